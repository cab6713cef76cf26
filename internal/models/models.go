package models

// Project is a programme run by the organisation that donors can support.
type Project struct {
	ID                 int     `json:"id"`
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	Country            string  `json:"country"`
	BeneficiariesCount int     `json:"beneficiaries_count"`
	Budget             float64 `json:"budget"`
	Status             string  `json:"status"`
	ImagePublicID      *string `json:"cloudinary_public_id"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

// ProjectRequest is the back-office payload for creating or updating a
// project.
type ProjectRequest struct {
	Name               string  `json:"name" validate:"required,min=3,max=100"`
	Description        string  `json:"description" validate:"required"`
	Country            string  `json:"country" validate:"required"`
	BeneficiariesCount int     `json:"beneficiaries_count" validate:"gte=0"`
	Budget             float64 `json:"budget" validate:"gte=0"`
	Status             string  `json:"status" validate:"required,oneof=active completed"`
	ImagePublicID      *string `json:"cloudinary_public_id,omitempty"`
}

// Donation is a recorded contribution, including the manual payment
// verification fields maintained by the back-office.
type Donation struct {
	ID                int     `json:"id"`
	DonorName         string  `json:"donor_name"`
	Email             string  `json:"email"`
	Amount            float64 `json:"amount"`
	ProjectID         int     `json:"project_id"`
	ProjectName       string  `json:"project_name,omitempty"`
	Country           string  `json:"country"`
	Status            string  `json:"status"`
	DonationDate      string  `json:"donation_date"`
	Currency          string  `json:"currency,omitempty"`
	PaymentMethod     string  `json:"payment_method,omitempty"`
	TransactionID     string  `json:"transaction_id,omitempty"`
	PaymentProofURL   string  `json:"payment_proof_url,omitempty"`
	PaymentStatus     string  `json:"payment_status,omitempty"`
	VerifiedAt        string  `json:"verified_at,omitempty"`
	VerifiedBy        int     `json:"verified_by,omitempty"`
	VerificationNotes string  `json:"verification_notes,omitempty"`
}

// DonationRequest is the creation payload sent to the backend.
type DonationRequest struct {
	DonorName       string  `json:"donor_name"`
	Email           string  `json:"email"`
	Amount          float64 `json:"amount"`
	ProjectID       int     `json:"project_id"`
	Country         string  `json:"country"`
	PaymentMethod   string  `json:"payment_method"`
	TransactionID   string  `json:"transaction_id"`
	PaymentProofURL string  `json:"payment_proof_url,omitempty"`
	Currency        string  `json:"currency,omitempty"`
}

// BankAccount describes the organisation's bank transfer details.
type BankAccount struct {
	AccountName   string `json:"account_name"`
	Name          string `json:"name"`
	AccountNumber string `json:"account_number"`
	SwiftCode     string `json:"swift_code"`
	Address       string `json:"address"`
}

// MobileMoneyAccount is a regional mobile money receiving account.
type MobileMoneyAccount struct {
	Number string `json:"number"`
	Name   string `json:"name"`
}

// PaymentAccounts is the read-only snapshot rendered on the payment step.
type PaymentAccounts struct {
	BankAccount BankAccount                   `json:"bank_account"`
	MobileMoney map[string]MobileMoneyAccount `json:"mobile_money"`
}

// Application is a membership application submitted through the public site.
type Application struct {
	ID         int    `json:"id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Country    string `json:"country"`
	Motivation string `json:"motivation"`
	Status     string `json:"status"`
	AppliedAt  string `json:"applied_at"`
	ReviewedAt string `json:"reviewed_at,omitempty"`
}

// ApplicationRequest is the public submission payload.
type ApplicationRequest struct {
	FullName   string `json:"full_name" validate:"required,min=3,max=50"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,min=10,max=16"`
	Country    string `json:"country" validate:"required"`
	Motivation string `json:"motivation" validate:"required"`
}

// ContactInfo is a single contact channel shown on the contact page.
type ContactInfo struct {
	ID            int     `json:"id"`
	ContactType   string  `json:"contact_type"`
	Label         string  `json:"label"`
	Value         string  `json:"value"`
	Link          *string `json:"link"`
	Icon          string  `json:"icon"`
	OrderPosition int     `json:"order_position"`
}

// SocialMedia is a social platform link managed by the back-office.
type SocialMedia struct {
	ID            int    `json:"id"`
	Platform      string `json:"platform"`
	PlatformName  string `json:"platform_name"`
	URL           string `json:"url"`
	Icon          string `json:"icon"`
	ColorClass    string `json:"color_class"`
	IsActive      bool   `json:"is_active"`
	OrderPosition int    `json:"order_position"`
}

// RegionalOffice is a country office listed on the contact page.
type RegionalOffice struct {
	ID            int     `json:"id"`
	Country       string  `json:"country"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Address       *string `json:"address"`
	IsActive      bool    `json:"is_active"`
	OrderPosition int     `json:"order_position"`
}

// SiteSettings holds the editable text blocks rendered across the site.
type SiteSettings struct {
	SiteName         string `json:"site_name"`
	HeroHeading      string `json:"hero_heading"`
	HeroDescription  string `json:"hero_description"`
	HeroVideoURL     string `json:"hero_video_url"`
	MissionStatement string `json:"mission_statement"`
	VisionStatement  string `json:"vision_statement"`
	OfficeHours      string `json:"office_hours"`
	ResponseTime     string `json:"response_time"`
}

// CoreValue is an ordered value statement shown on the about page.
type CoreValue struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Icon          string `json:"icon"`
	OrderPosition int    `json:"order_position"`
}

// TeamMember is a listed member of the organisation's team.
type TeamMember struct {
	ID            int     `json:"id"`
	FullName      string  `json:"full_name"`
	Role          string  `json:"role"`
	Country       string  `json:"country"`
	Bio           string  `json:"bio"`
	ImagePublicID *string `json:"cloudinary_public_id"`
	OrderPosition int     `json:"order_position"`
}

// Admin is the authenticated back-office user profile.
type Admin struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at,omitempty"`
}

// OverviewStats is the admin dashboard summary.
type OverviewStats struct {
	TotalProjects        int     `json:"total_projects"`
	ActiveProjects       int     `json:"active_projects"`
	TotalApplications    int     `json:"total_applications"`
	ApprovedApplications int     `json:"approved_applications"`
	TotalDonations       float64 `json:"total_donations"`
	TotalBeneficiaries   int     `json:"total_beneficiaries"`
	CountriesCount       int     `json:"countries_count"`
}

// CountryStats aggregates projects per country.
type CountryStats struct {
	Country            string `json:"country"`
	ProjectCount       int    `json:"project_count"`
	TotalBeneficiaries int    `json:"total_beneficiaries"`
}

// DonationStatsByCountry is one row of the per-country donation aggregate.
type DonationStatsByCountry struct {
	Country string  `json:"country"`
	Amount  float64 `json:"amount"`
	Count   int     `json:"count"`
}

// DonationStatsByProject is one row of the per-project donation aggregate.
type DonationStatsByProject struct {
	ProjectID   int     `json:"project_id"`
	ProjectName string  `json:"project_name"`
	Amount      float64 `json:"amount"`
	Count       int     `json:"count"`
}

// DonationStats aggregates recorded donations.
type DonationStats struct {
	TotalAmount float64                  `json:"total_amount"`
	TotalCount  int                      `json:"total_count"`
	ByCountry   []DonationStatsByCountry `json:"by_country"`
	ByProject   []DonationStatsByProject `json:"by_project"`
}

// Countries lists the countries selectable on public forms.
var Countries = []string{
	"Benin", "Burkina Faso", "Cameroon", "Ghana", "Ivory Coast",
	"Kenya", "Nigeria", "Rwanda", "Senegal", "South Africa",
	"Tanzania", "Togo", "Uganda", "Other",
}

// KnownCountry reports whether the supplied value is on the selectable list.
func KnownCountry(country string) bool {
	for _, c := range Countries {
		if c == country {
			return true
		}
	}
	return false
}
