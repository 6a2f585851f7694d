package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	// Report config keys (dictionary.base_url) rather than Go field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	customs := []struct {
		tag     string
		fn      validator.Func
		message string
	}{
		{tag: "file", fn: isFileReadable, message: "{0} must be an existing and readable file"},
	}
	for _, c := range customs {
		if err := validate.RegisterValidation(c.tag, c.fn); err != nil {
			return nil, nil, fmt.Errorf("failed to register %s validation: %w", c.tag, err)
		}
		message := c.message
		tag := c.tag
		if err := validate.RegisterTranslation(tag, trans, func(ut ut.Translator) error {
			return ut.Add(tag, message, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, configKey(fe))
			return t
		}); err != nil {
			return nil, nil, fmt.Errorf("failed to register %s translation: %w", tag, err)
		}
	}

	return validate, trans, nil
}

// configKey turns a validator namespace like Config.templates.dictionary_report_template
// into the dotted key used in config.yml.
func configKey(fe validator.FieldError) string {
	return strings.TrimPrefix(fe.Namespace(), "Config.")
}

func isFileReadable(fl validator.FieldLevel) bool {
	path := fl.Field().String()
	if path == "" {
		return false
	}

	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.IsDir() {
		return false
	}

	// owner read bit
	return info.Mode().Perm()&0o400 != 0
}
