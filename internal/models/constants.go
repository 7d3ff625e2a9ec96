package models

import "time"

// Categories and descriptions used for generated records
const (
	CategoryLoanPayment    = "Loan Payment"
	LoanPaymentDescription = "%s - Payment"
	DefaultCategoryColor   = "bg-slate-400"
)

// PaymentInterval is how far a loan's next payment date moves per payment.
const PaymentInterval = 30 * 24 * time.Hour

// File permissions
const (
	PermissionDataFile   = 0600
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
