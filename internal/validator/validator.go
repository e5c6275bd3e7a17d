package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/lumela/schoolsync-backend/internal/model"
)

// trans is the singleton English translator for validation errors.
var trans ut.Translator

// enumChecks maps custom binding tags onto the domain's typed enums, so
// request structs can say `binding:"attendance_status"` instead of
// repeating oneof lists that drift from the enum definitions.
var enumChecks = map[string]func(string) bool{
	"attendance_type":   func(v string) bool { return model.AttendanceType(v).Valid() },
	"attendance_status": func(v string) bool { return model.AttendanceStatus(v).Valid() },
	"consent_type":      func(v string) bool { return model.ConsentType(v).Valid() },
	"consent_direction": func(v string) bool { return model.ConsentDirection(v).Valid() },
}

// Setup wires JSON tag names, English translations, and the domain enum
// validations into Gin's binding engine. Call once during startup.
func Setup() {
	v, ok := binding.Validator.Engine().(*govalidator.Validate)
	if !ok {
		return
	}

	// Error messages report the JSON field name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ = uni.GetTranslator("en")
	en_translations.RegisterDefaultTranslations(v, trans)

	for tag, valid := range enumChecks {
		check := valid
		v.RegisterValidation(tag, func(fl govalidator.FieldLevel) bool {
			return check(fl.Field().String())
		})
		registerEnumMessage(v, tag)
	}
}

func registerEnumMessage(v *govalidator.Validate, tag string) {
	message := "{0} is not a recognized " + strings.ReplaceAll(tag, "_", " ")
	v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error {
			return t.Add(tag, message, true)
		},
		func(t ut.Translator, fe govalidator.FieldError) string {
			msg, err := t.T(tag, fe.Field())
			if err != nil {
				return fe.Field() + " is invalid"
			}
			return msg
		})
}

// TranslateErrors flattens a binding/validation error into a field name →
// message map. Non-validation errors (e.g. malformed JSON) come back under
// the "detail" key.
func TranslateErrors(err error) map[string]string {
	var ve govalidator.ValidationErrors
	if !errors.As(err, &ve) {
		return map[string]string{"detail": err.Error()}
	}

	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = fe.Translate(trans)
	}
	return fields
}

// Bind binds and validates the request body into dst.
// Returns nil on success or a translated field error map on failure.
func Bind(c *gin.Context, dst interface{}) map[string]string {
	if err := c.ShouldBindJSON(dst); err != nil {
		return TranslateErrors(err)
	}
	return nil
}
