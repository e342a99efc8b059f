package workflow

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaymentPercentage(t *testing.T) {
	require.Equal(t, 0.0, PaymentPercentage(0, 40000000))
	require.Equal(t, 12.5, PaymentPercentage(5000000, 40000000))
	require.Equal(t, 50.0, PaymentPercentage(20000000, 40000000))
	require.Equal(t, 100.0, PaymentPercentage(40000000, 40000000))

	// Overpayment is not clamped
	require.Equal(t, 125.0, PaymentPercentage(50000000, 40000000))

	// A zero or negative total cannot produce a percentage
	require.Equal(t, 0.0, PaymentPercentage(1000, 0))
	require.Equal(t, 0.0, PaymentPercentage(1000, -5))
}

func TestEligibleDocumentsBands(t *testing.T) {
	require.Empty(t, EligibleDocuments(0))
	require.Equal(t, []string{DocOfferLetter}, EligibleDocuments(12.5))
	require.Equal(t, []string{DocOfferLetter}, EligibleDocuments(49.9))
	require.Equal(t, []string{DocProvisionalAllocation}, EligibleDocuments(50))
	require.Equal(t, []string{DocProvisionalAllocation}, EligibleDocuments(99.9))
	require.Equal(t, []string{DocFullAllocation, DocSalesAgreement, DocDeedAssignment}, EligibleDocuments(100))
	require.Equal(t, []string{DocFullAllocation, DocSalesAgreement, DocDeedAssignment}, EligibleDocuments(125))
}

// As payments accumulate, the cumulative set of kinds ever made eligible
// only grows.
func TestEligibleDocumentsMonotonic(t *testing.T) {
	total := 40000000.0
	seen := map[string]bool{}
	var previousCount int

	for _, paid := range []float64{0, 1000000, 5000000, 19999999, 20000000, 39000000, 40000000, 45000000} {
		pct := PaymentPercentage(paid, total)
		for _, kind := range EligibleDocuments(pct) {
			seen[kind] = true
		}
		require.GreaterOrEqual(t, len(seen), previousCount, "eligible set shrank at %.0f paid", paid)
		previousCount = len(seen)
	}

	require.Len(t, seen, 5)
}
