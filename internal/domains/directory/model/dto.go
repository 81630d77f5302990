package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// SetLetterRequest changes the active letter filter
type SetLetterRequest struct {
	Letter string `json:"letter" binding:"required"`
}

func (r SetLetterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Letter,
			validation.Required.Error("letter is required"),
			validation.By(validateLetter),
		),
	)
}

// GoToPageRequest moves the view to another page. Out of range pages are
// accepted here and rejected by the service as a no-op.
type GoToPageRequest struct {
	Page *int `json:"page" binding:"required"`
}

func (r GoToPageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Page, validation.NotNil.Error("page is required")),
	)
}

// QueryRequest is a stateless filter + page query over the active roster
type QueryRequest struct {
	Letter string `form:"letter"`
	Page   int    `form:"page"`
}

// Validate applies defaults then checks the letter
func (r *QueryRequest) Validate() error {
	if r.Letter == "" {
		r.Letter = string(LetterAll)
	}
	if r.Page < 1 {
		r.Page = 1
	}
	return validation.ValidateStruct(r,
		validation.Field(&r.Letter, validation.By(validateLetter)),
	)
}

func validateLetter(value interface{}) error {
	s, _ := value.(string)
	if _, err := ParseLetter(s); err != nil {
		return err
	}
	return nil
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// GoToPageResponse reports whether the page actually changed
type GoToPageResponse struct {
	Moved bool  `json:"moved"`
	Page  *Page `json:"page"`
}

// SelectEntryResponse is returned when an ordinal resolves to a user
type SelectEntryResponse struct {
	Found   bool            `json:"found"`
	Profile *ProfileRequest `json:"profile,omitempty"`
}
