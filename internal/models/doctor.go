package models

// Doctor is a directory entry. Admin accounts are listed through the same
// endpoint and carry Role "admin".
type Doctor struct {
	ID        string   `json:"_id"`
	Name      string   `json:"name"`
	Specialty string   `json:"specialty"`
	Image     string   `json:"image"`
	Bio       string   `json:"bio"`
	Studies   []string `json:"studies"`
	Phone     string   `json:"phone"`
	Email     string   `json:"email"`
	Role      string   `json:"role,omitempty"`
}

// DoctorImage is an uploaded profile picture forwarded as-is
type DoctorImage struct {
	Filename    string
	ContentType string
	Data        []byte
}

// DoctorInput is the admin create/update form. Password may be empty on
// update to keep the current one.
type DoctorInput struct {
	Name      string       `form:"name" binding:"required"`
	Email     string       `form:"email" binding:"required,email"`
	Phone     string       `form:"phone"`
	Password  string       `form:"password"`
	Specialty string       `form:"specialty"`
	Role      string       `form:"role" binding:"required,oneof=doctor admin"`
	Image     *DoctorImage `form:"-"`
}

// FeaturedDoctor is a clinic doctor with a dedicated profile page
type FeaturedDoctor struct {
	Slug      string
	Name      string
	Specialty string
	Image     string
	Summary   string
	Studies   []string
	Services  []string
	Phone     string
	Email     string
}
