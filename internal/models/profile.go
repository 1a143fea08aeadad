package models

// Profile is guardian-editable profile data. Every field is optional: a
// freshly registered account starts with a fully empty profile and fills
// it in over time.
type Profile struct {
	FirstName       string `json:"firstName,omitempty"`
	LastName        string `json:"lastName,omitempty"`
	Email           string `json:"email,omitempty"`
	Image           string `json:"image,omitempty"`
	Banner          string `json:"banner,omitempty"`
	Country         string `json:"country,omitempty"`
	City            string `json:"city,omitempty"`
	Relationship    string `json:"relationship,omitempty"`
	Religion        string `json:"religion,omitempty"`
	Gender          string `json:"gender,omitempty"`
	Language        string `json:"language,omitempty"`
	DateOfBirth     string `json:"dateOfBirth,omitempty"`
	VerificationDoc string `json:"verificationDoc,omitempty"`
	PhoneNumber     string `json:"phoneNumber,omitempty"`
	ChildID         string `json:"childId,omitempty"`
}

// IsComplete reports whether all fields required for a usable guardian
// profile are present. Derived on every call, never stored.
func (p Profile) IsComplete() bool {
	required := []string{
		p.FirstName,
		p.LastName,
		p.Email,
		p.Country,
		p.City,
		p.DateOfBirth,
		p.Relationship,
		p.Religion,
	}
	for _, v := range required {
		if v == "" {
			return false
		}
	}
	return true
}

// ProfileUpdate is a partial profile edit. Nil fields are left untouched;
// non-nil fields overwrite, including explicit empty strings.
type ProfileUpdate struct {
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	Email           *string `json:"email"`
	Image           *string `json:"image"`
	Banner          *string `json:"banner"`
	Country         *string `json:"country"`
	City            *string `json:"city"`
	Relationship    *string `json:"relationship"`
	Religion        *string `json:"religion"`
	Gender          *string `json:"gender"`
	Language        *string `json:"language"`
	DateOfBirth     *string `json:"dateOfBirth"`
	VerificationDoc *string `json:"verificationDoc"`
	PhoneNumber     *string `json:"phoneNumber"`
	ChildID         *string `json:"childId"`
}

// Apply merges the update into p field by field.
func (u *ProfileUpdate) Apply(p *Profile) {
	if u.FirstName != nil {
		p.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		p.LastName = *u.LastName
	}
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.Image != nil {
		p.Image = *u.Image
	}
	if u.Banner != nil {
		p.Banner = *u.Banner
	}
	if u.Country != nil {
		p.Country = *u.Country
	}
	if u.City != nil {
		p.City = *u.City
	}
	if u.Relationship != nil {
		p.Relationship = *u.Relationship
	}
	if u.Religion != nil {
		p.Religion = *u.Religion
	}
	if u.Gender != nil {
		p.Gender = *u.Gender
	}
	if u.Language != nil {
		p.Language = *u.Language
	}
	if u.DateOfBirth != nil {
		p.DateOfBirth = *u.DateOfBirth
	}
	if u.VerificationDoc != nil {
		p.VerificationDoc = *u.VerificationDoc
	}
	if u.PhoneNumber != nil {
		p.PhoneNumber = *u.PhoneNumber
	}
	if u.ChildID != nil {
		p.ChildID = *u.ChildID
	}
}
