package models

import (
	"time"
)

// CompanyInfo is a singleton row: the one tenant this backend serves.
type CompanyInfo struct {
	ID                int       `json:"id" db:"id"`
	Name              *string   `json:"name" db:"name"`
	LogoURL           *string   `json:"logo_url" db:"logo_url"`
	IntroText         *string   `json:"intro_text" db:"intro_text"`
	IntroTextDetail   *string   `json:"intro_text_detail" db:"intro_text_detail"`
	Address           *string   `json:"address" db:"address"`
	TaxCode           *string   `json:"tax_code" db:"tax_code"`
	Email             *string   `json:"email" db:"email"`
	WelcomeContent    *string   `json:"welcome_content" db:"welcome_content"`
	Banner            *string   `json:"banner" db:"banner"`
	IntroImage        *string   `json:"intro_image" db:"intro_image"`
	CustomerCount     int       `json:"customer_count" db:"customer_count"`
	SatisfiedCount    int       `json:"satisfied_count" db:"satisfied_count"`
	QualityPercent    int       `json:"quality_percent" db:"quality_percent"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}
