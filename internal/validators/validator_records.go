package validators

import (
	"context"
	"net/mail"
	"slices"
	"strings"

	"github.com/MKhiriev/go-data-hub/models"
)

// Required columns per submission kind, in form order.
var (
	UserRequiredFields = []string{models.ColUserName, models.ColEmail, models.ColPhone}

	ProjectRequiredFields = []string{models.ColProjectName, models.ColProjectActive}

	BeneficiaryRequiredFields = []string{
		models.ColFullName, models.ColCPF, models.ColBirthDate, models.ColSex,
		models.ColAddress, models.ColNeighborhood, models.ColFilledBy,
	}
)

// RecordValidator validates the submissions that append rows: new users,
// new projects and beneficiary registrations.
type RecordValidator struct{}

func NewRecordValidator() *RecordValidator {
	return &RecordValidator{}
}

// Validate dispatches on the submission type. Without fields every required
// column of the type is checked. All failures are reported together in one
// *ValidationError.
func (v *RecordValidator) Validate(ctx context.Context, input any, fields ...string) error {
	switch value := input.(type) {
	case models.NewUserRequest:
		return v.validateUser(value, fields...)
	case *models.NewUserRequest:
		return v.validateUser(*value, fields...)

	case models.NewProjectRequest:
		return v.validateProject(value, fields...)
	case *models.NewProjectRequest:
		return v.validateProject(*value, fields...)

	case models.Beneficiary:
		return v.validateBeneficiary(value, fields...)
	case *models.Beneficiary:
		return v.validateBeneficiary(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// requireFields reports the requested fields whose value is blank.
func requireFields(fields []string, values map[string]string) error {
	var out []string
	for _, f := range fields {
		value, ok := values[f]
		if !ok {
			return ErrUnknownField
		}
		if blank(value) {
			out = append(out, f)
		}
	}
	if len(out) > 0 {
		return &ValidationError{Fields: out}
	}
	return nil
}

func (v *RecordValidator) validateUser(req models.NewUserRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = UserRequiredFields
	}

	err := requireFields(fields, map[string]string{
		models.ColUserName: req.Name,
		models.ColEmail:    req.Email,
		models.ColPhone:    req.Phone,
	})
	if err != nil || !slices.Contains(fields, models.ColEmail) {
		return err
	}

	if _, parseErr := mail.ParseAddress(strings.TrimSpace(req.Email)); parseErr != nil {
		return &ValidationError{Fields: []string{models.ColEmail}, Reason: "invalid e-mail address"}
	}
	return nil
}

func (v *RecordValidator) validateProject(req models.NewProjectRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = ProjectRequiredFields
	}

	err := requireFields(fields, map[string]string{
		models.ColProjectName:   req.Name,
		models.ColProjectActive: req.Status,
	})
	if err != nil || !slices.Contains(fields, models.ColProjectActive) {
		return err
	}

	status := strings.TrimSpace(req.Status)
	if status != models.ActiveYes && status != models.ActiveNo {
		return &ValidationError{
			Fields: []string{models.ColProjectActive},
			Reason: "active flag must be " + models.ActiveYes + " or " + models.ActiveNo,
		}
	}
	return nil
}

func (v *RecordValidator) validateBeneficiary(b models.Beneficiary, fields ...string) error {
	if len(fields) == 0 {
		fields = BeneficiaryRequiredFields
	}

	return requireFields(fields, map[string]string{
		models.ColFullName:     b.FullName,
		models.ColCPF:          b.CPF,
		models.ColBirthDate:    b.BirthDate,
		models.ColSex:          b.Sex,
		models.ColAddress:      b.Address,
		models.ColNeighborhood: b.Neighborhood,
		models.ColFilledBy:     b.FilledBy,
	})
}
