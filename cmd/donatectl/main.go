package main

import "bam-donation/cmd/donatectl/cmd"

func main() {
	cmd.Execute()
}
