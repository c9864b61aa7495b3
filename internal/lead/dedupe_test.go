package lead_test

import (
	"fmt"
	"testing"

	"go-crm/internal/lead"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func mkLead(name, email, phone string) lead.Lead {
	return lead.Lead{ID: uuid.New(), Name: name, Email: email, Phone: phone}
}

func TestDetectDuplicates(t *testing.T) {
	t.Run("same phone with different formatting groups together", func(t *testing.T) {
		groups := lead.DetectDuplicates([]lead.Lead{
			mkLead("Ravi Kumar", "", "+91 98765-43210"),
			mkLead("R. Kumar Enterprises", "", "9876543210"),
			mkLead("Unrelated", "", "1112223334"),
		})

		if assert.Len(t, groups, 1) {
			assert.Len(t, groups[0].Leads, 2)
			assert.Equal(t, []string{"phone"}, groups[0].Signals)
			assert.Equal(t, 90, groups[0].Confidence)
		}
	})

	t.Run("email match has highest confidence", func(t *testing.T) {
		groups := lead.DetectDuplicates([]lead.Lead{
			mkLead("A One", " SALES@Example.com ", ""),
			mkLead("B Two", "sales@example.com", ""),
		})

		if assert.Len(t, groups, 1) {
			assert.Equal(t, []string{"email"}, groups[0].Signals)
			assert.Equal(t, 95, groups[0].Confidence)
		}
	})

	t.Run("name substring relationship is a signal", func(t *testing.T) {
		groups := lead.DetectDuplicates([]lead.Lead{
			mkLead("Acme", "", ""),
			mkLead("Acme Corporation", "", ""),
		})

		if assert.Len(t, groups, 1) {
			assert.Equal(t, []string{"name"}, groups[0].Signals)
			assert.Equal(t, 72, groups[0].Confidence)
		}
	})

	t.Run("multiple signals add to confidence, capped at 99", func(t *testing.T) {
		groups := lead.DetectDuplicates([]lead.Lead{
			mkLead("Acme", "hi@acme.com", "9876543210"),
			mkLead("Acme Corporation", "hi@acme.com", "+91 98765 43210"),
		})

		if assert.Len(t, groups, 1) {
			assert.Equal(t, []string{"email", "name", "phone"}, groups[0].Signals)
			// 95 + 3 + 3 = 101 -> cap 99
			assert.Equal(t, 99, groups[0].Confidence)
		}
	})

	t.Run("transitive chains collapse into one group", func(t *testing.T) {
		groups := lead.DetectDuplicates([]lead.Lead{
			mkLead("A", "x@example.com", "111"),
			mkLead("B", "x@example.com", "222"),
			mkLead("C", "y@example.com", "222"),
		})

		if assert.Len(t, groups, 1) {
			assert.Len(t, groups[0].Leads, 3)
		}
	})

	t.Run("empty fields never match each other", func(t *testing.T) {
		groups := lead.DetectDuplicates([]lead.Lead{
			mkLead("A", "", ""),
			mkLead("B", "", ""),
		})
		assert.Empty(t, groups)
	})

	t.Run("batch capped at limit", func(t *testing.T) {
		var leads []lead.Lead
		for i := 0; i < lead.DedupeBatchLimit; i++ {
			leads = append(leads, mkLead(fmt.Sprintf("Customer %03d", i), fmt.Sprintf("l%03d@example.com", i), ""))
		}
		// Pasangan duplikat di luar cap tidak boleh terdeteksi.
		leads = append(leads,
			mkLead("Beyond", "beyond@example.com", ""),
			mkLead("Beyond", "beyond@example.com", ""),
		)

		groups := lead.DetectDuplicates(leads)
		assert.Empty(t, groups)
	})
}

func TestNormalizePhoneDigits(t *testing.T) {
	assert.Equal(t, "9876543210", lead.NormalizePhoneDigits("+91 98765-43210"))
	assert.Equal(t, "9876543210", lead.NormalizePhoneDigits("9876543210"))
	assert.Equal(t, "12345", lead.NormalizePhoneDigits("1-23.45"))
	assert.Equal(t, "", lead.NormalizePhoneDigits("ext only"))
}
