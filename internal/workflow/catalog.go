// Package workflow holds the fixed per-application-type step catalogs and
// the progress rules that advance an application through them.
package workflow

import "maktab/internal/domain"

// Step is one entry in an application type's processing sequence.
type Step struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// catalogs maps each application type to its ordered step sequence. The
// synthetic "completed" marker is not listed; progression past the last
// entry lands there. The "other" type has no catalog and is completed
// through an explicit action instead.
var catalogs = map[domain.ApplicationType][]Step{
	domain.AppTypeNewVisa: {
		{ID: "offer_letter_typing", Label: "Offer Letter Typing", Description: "Type the job offer letter in the MOHRE system"},
		{ID: "labour_approval", Label: "Labour Approval", Description: "Obtain work permit approval from MOHRE"},
		{ID: "insurance", Label: "Insurance", Description: "Issue the mandatory medical insurance policy"},
		{ID: "entry_permit", Label: "Entry Permit", Description: "Apply for the employment entry permit"},
		{ID: "status_change", Label: "Status Change", Description: "Change visa status inside the country or arrange entry"},
		{ID: "medical_test", Label: "Medical Test", Description: "Book and complete the medical fitness test"},
		{ID: "emirates_id_biometrics", Label: "Emirates ID Biometrics", Description: "Complete Emirates ID biometrics capture"},
		{ID: "visa_stamping", Label: "Visa Stamping", Description: "Submit the passport for residence visa stamping"},
	},
	domain.AppTypeVisaRenewal: {
		{ID: "contract_renewal_typing", Label: "Contract Renewal Typing", Description: "Type the labour contract renewal"},
		{ID: "labour_card_renewal", Label: "Labour Card Renewal", Description: "Renew the labour card with MOHRE"},
		{ID: "insurance_renewal", Label: "Insurance Renewal", Description: "Renew the medical insurance policy"},
		{ID: "medical_test", Label: "Medical Test", Description: "Complete the medical fitness test"},
		{ID: "emirates_id_renewal", Label: "Emirates ID Renewal", Description: "Renew the Emirates ID card"},
		{ID: "visa_stamping", Label: "Visa Stamping", Description: "Stamp the renewed residence visa"},
	},
	domain.AppTypeVisaCancellation: {
		{ID: "labour_cancellation_typing", Label: "Labour Cancellation Typing", Description: "Type the labour contract cancellation"},
		{ID: "labour_cancellation_submission", Label: "Labour Cancellation Submission", Description: "Submit the cancellation to MOHRE"},
		{ID: "immigration_cancellation", Label: "Immigration Cancellation", Description: "Cancel the residence visa with immigration"},
	},
	domain.AppTypeNewLicense: {
		{ID: "name_reservation", Label: "Trade Name Reservation", Description: "Reserve the trade name with the DED"},
		{ID: "initial_approval", Label: "Initial Approval", Description: "Obtain initial activity approval"},
		{ID: "moa_typing", Label: "MOA Typing", Description: "Type and notarize the memorandum of association"},
		{ID: "tenancy_contract", Label: "Tenancy Contract", Description: "Register the Ejari tenancy contract"},
		{ID: "license_issuance", Label: "License Issuance", Description: "Pay fees and collect the trade license"},
	},
	domain.AppTypeLicenseRenewal: {
		{ID: "tenancy_renewal", Label: "Tenancy Renewal", Description: "Renew the Ejari tenancy contract"},
		{ID: "renewal_typing", Label: "Renewal Typing", Description: "Type the license renewal application"},
		{ID: "fee_payment", Label: "Fee Payment", Description: "Pay the renewal fees"},
		{ID: "license_collection", Label: "License Collection", Description: "Collect the renewed trade license"},
	},
	domain.AppTypeLicenseAmendment: {
		{ID: "amendment_typing", Label: "Amendment Typing", Description: "Type the amendment application"},
		{ID: "approvals", Label: "Approvals", Description: "Collect authority approvals for the amendment"},
		{ID: "amended_license_issuance", Label: "Amended License Issuance", Description: "Issue the amended license"},
	},
	domain.AppTypeLabourCard: {
		{ID: "labour_card_typing", Label: "Labour Card Typing", Description: "Type the labour card application"},
		{ID: "labour_card_submission", Label: "Labour Card Submission", Description: "Submit the application to MOHRE"},
		{ID: "labour_card_issuance", Label: "Labour Card Issuance", Description: "Receive the issued labour card"},
	},
	domain.AppTypeEmiratesID: {
		{ID: "eid_typing", Label: "Emirates ID Typing", Description: "Type the Emirates ID application"},
		{ID: "biometrics", Label: "Biometrics", Description: "Complete biometrics at the ICP center"},
		{ID: "card_issuance", Label: "Card Issuance", Description: "Receive the Emirates ID card"},
	},
	domain.AppTypeFamilyVisa: {
		{ID: "entry_permit_typing", Label: "Entry Permit Typing", Description: "Type the family entry permit application"},
		{ID: "entry_permit_approval", Label: "Entry Permit Approval", Description: "Obtain entry permit approval"},
		{ID: "status_change", Label: "Status Change", Description: "Change visa status inside the country or arrange entry"},
		{ID: "medical_test", Label: "Medical Test", Description: "Complete the medical fitness test (18+ only)"},
		{ID: "emirates_id_biometrics", Label: "Emirates ID Biometrics", Description: "Complete Emirates ID biometrics capture"},
		{ID: "visa_stamping", Label: "Visa Stamping", Description: "Stamp the residence visa"},
	},
	domain.AppTypeOther: {},
}

// StepsFor returns the ordered step sequence for the application type.
// Unknown types yield nil; callers treat that the same as an empty catalog.
func StepsFor(appType domain.ApplicationType) []Step {
	return catalogs[appType]
}

// FirstStep returns the id of the first catalog step, or "" for types
// with an empty catalog.
func FirstStep(appType domain.ApplicationType) string {
	steps := catalogs[appType]
	if len(steps) == 0 {
		return ""
	}
	return steps[0].ID
}

// stepIndex returns the position of stepID in the type's catalog, or -1.
func stepIndex(appType domain.ApplicationType, stepID string) int {
	for i, s := range catalogs[appType] {
		if s.ID == stepID {
			return i
		}
	}
	return -1
}

// NextStep returns the step after stepID in the type's catalog, or the
// synthetic "completed" marker when stepID is the last entry.
func NextStep(appType domain.ApplicationType, stepID string) string {
	idx := stepIndex(appType, stepID)
	if idx < 0 {
		return domain.StepCompleted
	}
	steps := catalogs[appType]
	if idx+1 < len(steps) {
		return steps[idx+1].ID
	}
	return domain.StepCompleted
}
