package workflow

// Document kinds, in the order the thresholds unlock them.
const (
	DocOfferLetter           = "offer_letter"
	DocProvisionalAllocation = "provisional_allocation"
	DocFullAllocation        = "full_allocation"
	DocSalesAgreement        = "sales_agreement"
	DocDeedAssignment        = "deed_assignment"
)

// PaymentPercentage returns the share of the application total covered by
// verified payments, expressed 0-100. Overpayment is not clamped.
func PaymentPercentage(completed, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return completed / total * 100
}

// EligibleDocuments maps a payment percentage to the document kinds that
// band makes eligible. Thresholds are fixed: crossing 50 unlocks the
// provisional allocation, reaching 100 unlocks the closing pack.
func EligibleDocuments(percentage float64) []string {
	switch {
	case percentage >= 100:
		return []string{DocFullAllocation, DocSalesAgreement, DocDeedAssignment}
	case percentage >= 50:
		return []string{DocProvisionalAllocation}
	case percentage > 0:
		return []string{DocOfferLetter}
	default:
		return nil
	}
}
