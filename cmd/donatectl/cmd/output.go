package cmd

import (
	"io"

	"gopkg.in/yaml.v3"

	"bam-donation/internal/domain/entity"
	"bam-donation/internal/pkg/format"
)

type donationView struct {
	Donor     string `yaml:"donor"`
	Amount    string `yaml:"amount"`
	Asset     string `yaml:"asset"`
	Token     string `yaml:"token,omitempty"`
	Message   string `yaml:"message,omitempty"`
	Timestamp string `yaml:"timestamp"`
}

func donationViews(donations []entity.Donation) []donationView {
	views := make([]donationView, 0, len(donations))
	for _, d := range format.FormatDonations(donations) {
		v := donationView{
			Donor:     format.ShortenAddress(d.Donor.Hex()),
			Amount:    d.FormattedAmount,
			Asset:     d.AssetType.String(),
			Message:   d.Message,
			Timestamp: format.FormatTimestamp(d.Timestamp),
		}
		if d.TokenAddress != nil {
			v.Token = d.TokenAddress.Hex()
		}
		views = append(views, v)
	}
	return views
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
