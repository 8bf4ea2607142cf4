package material

import (
	"regexp"
	"strconv"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/adspirelabs/punotes/core"
)

var (
	studyTypeTag  = "studytype"
	studyTypeText = "must be one of: Notes, Question Bank, Solutions, Imp Files, Literature"

	streamTag   = "stream"
	streamText  = "invalid stream code"
	streamRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

	semesterTag  = "semester"
	semesterText = "semester must be a number between 1 and " + strconv.Itoa(MaxSemester)
)

// RegisterValidators registers the material validation tags on validate.
func RegisterValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(studyTypeTag, studyTypeValidation)
	core.RegisterCustomTranslation(validate, translator, studyTypeTag, studyTypeText)

	_ = validate.RegisterValidation(streamTag, streamValidation)
	core.RegisterCustomTranslation(validate, translator, streamTag, streamText)

	_ = validate.RegisterValidation(semesterTag, semesterValidation)
	core.RegisterCustomTranslation(validate, translator, semesterTag, semesterText)
}

func studyTypeValidation(fl validator.FieldLevel) bool {
	if t, ok := fl.Field().Interface().(string); ok {
		for _, typ := range Types {
			if t == typ {
				return true
			}
		}
	}
	return false
}

func streamValidation(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	return ok && streamRegex.MatchString(s)
}

func semesterValidation(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= 1 && n <= MaxSemester
}
