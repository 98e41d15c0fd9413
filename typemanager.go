package jtac

import (
	"errors"
	"fmt"
	"sync"
)

// Native type names reported by NativeTypeName.
const (
	NativeInteger  = "integer"
	NativeFloat    = "float"
	NativeDate     = "date"
	NativeDuration = "duration"
	NativeString   = "string"
)

// TypeManager converts between a native Go value and its culture formatted
// text.
//
// ToValue returns (nil, nil) for empty text and ToString returns "" for nil.
// Parse failures are *InputError; passing a value of the wrong native type
// to ToString is a *ConfigurationError.
//
// A TypeManager is safe for concurrent conversions once configured. Setters
// must not run concurrently with conversions.
type TypeManager interface {
	// Name is the registry name, e.g. "Currency".
	Name() string
	NativeTypeName() string
	StorageTypeName() string
	Culture() *CultureProfile

	ToValue(text string) (any, error)
	ToString(value any) (string, error)
	ToValueNeutral(text string) (any, error)
	ToStringNeutral(value any) (string, error)

	// Compare returns -1, 0 or 1. Each side may be a native value or text,
	// which is converted with ToValue first.
	Compare(a, b any) (int, error)
	IsValidChar(ch rune) bool
	IsNull(value any) bool
}

// Numeric is implemented by type managers whose values project onto a total
// order of float64, such as dates (days since epoch) and times (seconds).
type Numeric interface {
	ToNumber(value any) (float64, error)
}

// converter is the per-type behaviour plugged into typeManagerBase.
type converter interface {
	// stringToNative returns nil without an error when it cannot evaluate
	// text and has no more specific message to give.
	stringToNative(text string, neutral bool) (any, error)
	nativeToString(value any, neutral bool) (string, error)
	// reviewValue validates, clamps or rounds a parsed value.
	reviewValue(value any) (any, error)
	// native normalises an accepted Go value, reporting false for a type
	// this converter does not handle.
	native(value any) (any, bool)
	compareNative(a, b any) int
	isValidChar(ch rune) bool
}

type typeManagerBase struct {
	name        string
	nativeType  string
	storageType string
	culture     *CultureProfile
	conv        converter
}

func (b *typeManagerBase) Name() string            { return b.name }
func (b *typeManagerBase) NativeTypeName() string  { return b.nativeType }
func (b *typeManagerBase) StorageTypeName() string { return b.storageType }
func (b *typeManagerBase) Culture() *CultureProfile {
	return b.culture
}

func (b *typeManagerBase) ToValue(text string) (any, error) {
	return b.toValue(text, false)
}

func (b *typeManagerBase) ToValueNeutral(text string) (any, error) {
	return b.toValue(text, true)
}

func (b *typeManagerBase) toValue(text string, neutral bool) (any, error) {
	if text == "" {
		return nil, nil
	}
	value, err := b.conv.stringToNative(text, neutral)
	if err != nil {
		return nil, b.withText(err, text)
	}
	if value == nil {
		return nil, inputError(b.name, text, "invalid format")
	}
	value, err = b.conv.reviewValue(value)
	if err != nil {
		return nil, b.withText(err, text)
	}
	return value, nil
}

func (b *typeManagerBase) withText(err error, text string) error {
	var inputErr *InputError
	if errors.As(err, &inputErr) && inputErr.Text == "" {
		inputErr.Text = text
	}
	return err
}

func (b *typeManagerBase) ToString(value any) (string, error) {
	return b.toString(value, false)
}

func (b *typeManagerBase) ToStringNeutral(value any) (string, error) {
	return b.toString(value, true)
}

func (b *typeManagerBase) toString(value any, neutral bool) (string, error) {
	if b.IsNull(value) {
		return "", nil
	}
	native, ok := b.conv.native(value)
	if !ok {
		return "", wrongNativeType(b.name, value)
	}
	return b.conv.nativeToString(native, neutral)
}

func (b *typeManagerBase) IsNull(value any) bool {
	if value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && s == ""
}

func (b *typeManagerBase) Compare(x, y any) (int, error) {
	left, err := b.comparable(x)
	if err != nil {
		return 0, err
	}
	right, err := b.comparable(y)
	if err != nil {
		return 0, err
	}
	return b.conv.compareNative(left, right), nil
}

func (b *typeManagerBase) comparable(value any) (any, error) {
	if text, ok := value.(string); ok && b.nativeType != NativeString {
		converted, err := b.ToValue(text)
		if err != nil {
			return nil, err
		}
		value = converted
	}
	if b.IsNull(value) {
		return nil, fmt.Errorf("%w: %s cannot compare a missing value", ErrNullValue, b.name)
	}
	native, ok := b.conv.native(value)
	if !ok {
		return nil, wrongNativeType(b.name, value)
	}
	return native, nil
}

func (b *typeManagerBase) IsValidChar(ch rune) bool {
	return b.conv.isValidChar(ch)
}

func (b *typeManagerBase) setCulture(culture *CultureProfile) error {
	if culture == nil {
		return configError(b.name, "Culture", "must not be nil")
	}
	b.culture = culture
	return nil
}

// lazy holds derived data built on first use. Setters swap in a fresh lazy
// to invalidate it.
type lazy[T any] struct {
	once  sync.Once
	value T
}

func (l *lazy[T]) get(build func() T) T {
	l.once.Do(func() {
		l.value = build()
	})
	return l.value
}

func compareOrdered[T int64 | float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// resolveCulture returns culture, or the default culture of the built-in
// registry when culture is nil.
func resolveCulture(culture *CultureProfile) (*CultureProfile, error) {
	if culture != nil {
		return culture, nil
	}
	return DefaultCultureRegistry().Culture("")
}
