package format

import (
	"time"

	"bam-donation/internal/domain/entity"
)

// TimestampLayout matches the en-US "short month, day, year, 2-digit hour:minute" form.
const TimestampLayout = "Jan 2, 2006, 03:04 PM"

const (
	shortPrefixLen = 6
	shortSuffixLen = 4
)

// ShortenAddress keeps the first 6 and last 4 characters of address joined
// by "...". Strings shorter than 10 characters are returned unchanged.
func ShortenAddress(address string) string {
	if len(address) < shortPrefixLen+shortSuffixLen {
		return address
	}
	return address[:shortPrefixLen] + "..." + address[len(address)-shortSuffixLen:]
}

// FormatTimestamp renders t in the donation list format.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// FormatDonation normalizes a donation record for display. Native amounts are
// rendered in ether; token amounts stay as raw base-unit integers because the
// token's decimals are not part of the record.
func FormatDonation(d *entity.Donation) *entity.FormattedDonation {
	if d == nil {
		return nil
	}

	formatted := "0"
	if d.Amount != nil {
		if d.AssetType == entity.AssetNative {
			formatted = FormatEther(d.Amount)
		} else {
			formatted = d.Amount.String()
		}
	}

	return &entity.FormattedDonation{
		Donor:           d.Donor,
		Amount:          d.Amount,
		FormattedAmount: formatted,
		Timestamp:       time.Unix(int64(d.Timestamp), 0),
		Message:         d.Message,
		TokenAddress:    d.TokenAddress,
		AssetType:       d.AssetType,
		IsNative:        d.AssetType == entity.AssetNative,
		IsToken:         d.AssetType == entity.AssetToken,
	}
}

// FormatDonations applies FormatDonation to every record.
func FormatDonations(donations []entity.Donation) []entity.FormattedDonation {
	out := make([]entity.FormattedDonation, 0, len(donations))
	for i := range donations {
		out = append(out, *FormatDonation(&donations[i]))
	}
	return out
}
