package app

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	minReleaseYear = 1950
	maxReleaseYear = 2100
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

var fieldLabels = map[string]string{
	"username":     "Username",
	"email":        "Email",
	"password":     "Password",
	"confirmation": "Confirmation",
	"title":        "Title",
	"image_url":    "Image URL",
	"description":  "Description",
	"release_year": "Release year",
	"genres":       "Genres",
	"developers":   "Developers",
	"platforms":    "Platforms",
}

var requiredMessages = map[string]string{
	"confirmation": "Confirm your password",
}

type RegisterForm struct {
	Username     string `form:"username" validate:"required,max=80"`
	Email        string `form:"email" validate:"required,max=80"`
	Password     string `form:"password" validate:"required,max=72"`
	Confirmation string `form:"confirmation" validate:"required,eqfield=Password"`
}

func (f *RegisterForm) normalize() {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
}

// Validate reports every missing field at once, then mismatched
// confirmation. Uniqueness is checked separately against storage.
func (f RegisterForm) Validate() *ValidationError {
	return validateStruct(f)
}

type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

func (f *LoginForm) normalize() {
	f.Username = strings.TrimSpace(f.Username)
}

func (f LoginForm) Validate() *ValidationError {
	return validateStruct(f)
}

type ImageForm struct {
	Title       string `form:"title" validate:"required,max=100"`
	ImageURL    string `form:"image_url" validate:"required,max=255"`
	Description string `form:"description"`
}

func (f *ImageForm) normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.ImageURL = strings.TrimSpace(f.ImageURL)
	f.Description = strings.TrimSpace(f.Description)
}

func (f ImageForm) Validate() *ValidationError {
	return validateStruct(f)
}

// GameForm lists genres, developers and platforms as comma separated names.
type GameForm struct {
	Title       string `form:"title" validate:"required,max=120"`
	Description string `form:"description"`
	ReleaseYear string `form:"release_year" validate:"omitempty,number"`
	Genres      string `form:"genres" validate:"max=500"`
	Developers  string `form:"developers" validate:"max=500"`
	Platforms   string `form:"platforms" validate:"max=500"`
}

func (f *GameForm) normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.ReleaseYear = strings.TrimSpace(f.ReleaseYear)
}

func (f GameForm) Validate() *ValidationError {
	verr := validateStruct(f)
	if _, bad := verr.fieldSet("release_year"); bad || f.ReleaseYear == "" {
		return verr
	}
	if year, err := strconv.Atoi(f.ReleaseYear); err != nil || year < minReleaseYear || year > maxReleaseYear {
		if verr == nil {
			verr = newValidationError()
		}
		verr.add("release_year", fmt.Sprintf("Release year must be between %d and %d", minReleaseYear, maxReleaseYear), ErrInvalidField)
	}
	return verr
}

// Year returns the parsed release year, or 0 when none was given.
func (f GameForm) Year() int {
	year, _ := strconv.Atoi(f.ReleaseYear)
	return year
}

func (e *ValidationError) fieldSet(field string) (string, bool) {
	if e == nil {
		return "", false
	}
	msg, ok := e.Fields[field]
	return msg, ok
}

func validateStruct(form interface{}) *ValidationError {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	verr := newValidationError()
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.add("general", err.Error(), ErrInvalidField)
		return verr
	}
	for _, fe := range fieldErrs {
		message, kind := describeFieldError(fe)
		verr.add(fe.Field(), message, kind)
	}
	return verr
}

func describeFieldError(fe validator.FieldError) (string, error) {
	label := fieldLabel(fe.Field())
	switch fe.Tag() {
	case "required":
		if msg, ok := requiredMessages[fe.Field()]; ok {
			return msg, ErrMissingField
		}
		return label + " is required", ErrMissingField
	case "eqfield":
		return "Passwords do not match", ErrPasswordMismatch
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param()), ErrInvalidField
	case "number":
		return label + " must be a number", ErrInvalidField
	default:
		return label + " is invalid", ErrInvalidField
	}
}

func fieldLabel(field string) string {
	if label, ok := fieldLabels[field]; ok {
		return label
	}
	return field
}

// splitNames turns "RPG, Action ,rpg" into ["RPG", "Action", "rpg"]: trimmed,
// blanks dropped, exact duplicates removed, order kept.
func splitNames(raw string) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
