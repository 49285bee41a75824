// Package validator 请求参数校验
//
// 在gin的binding引擎（go-playground/validator）上注册自定义tag：
//   - isbn: 只允许数字、X、连字符和空格，最长20个字符
//
// validator自带的isbn会校验ISBN-10/13校验位，
// 馆藏里的老书号常常是手工录入的，这里只做格式检查，唯一性交给数据库约束。
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// MaxISBNLength 与books.isbn列宽一致
const MaxISBNLength = 20

var registerOnce sync.Once

// Register 把自定义规则注册到gin的校验引擎（可重复调用）
func Register() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin校验引擎不是go-playground/validator")
			return
		}
		err = RegisterOn(v)
	})
	return err
}

// RegisterOn 在指定的Validate实例上注册自定义规则
// 同时让错误里的字段名取json tag，和请求体保持一致
func RegisterOn(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v.RegisterValidation("isbn", validateISBN)
}

func validateISBN(fl validator.FieldLevel) bool {
	return ValidISBN(fl.Field().String())
}

// ValidISBN 书号格式检查
func ValidISBN(s string) bool {
	if s == "" || len(s) > MaxISBNLength {
		return false
	}
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == 'X' || r == 'x' || r == '-' || r == ' ':
		default:
			return false
		}
	}
	return digits > 0
}

// Describe 把校验错误转成面向客户端的一句话
// 例如 "title is required; isbn must be a valid ISBN"
func Describe(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		msgs = append(msgs, describeField(fe))
	}
	return strings.Join(msgs, "; ")
}

func describeField(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "isbn":
		return field + " must be a valid ISBN"
	case "gt", "gte", "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed on %s", field, fe.Tag())
	}
}
