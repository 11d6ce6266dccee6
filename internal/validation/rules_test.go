package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRules() RuleSet {
	return RuleSet{
		{Field: "name", Kind: String, Required: true, Lowercase: true},
		{Field: "kind", Kind: String, Enum: []string{"sedan", "van"}},
		{Field: "year", Kind: Int, Min: Bound(1980), MaxFn: func() float64 { return 2025 }},
		{Field: "mileage", Kind: Float, Min: Bound(0)},
		{Field: "shared", Kind: Bool},
		{Field: "note", Kind: String},
	}
}

func TestValidateRequiredField(t *testing.T) {
	rules := testRules()

	err := rules.Validate(map[string]interface{}{}, false)
	require.Error(t, err)
	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "name", verr.Field)

	// Partial mode skips absent fields entirely.
	assert.NoError(t, rules.Validate(map[string]interface{}{}, true))

	// Present but blank is rejected in either mode.
	err = rules.Validate(map[string]interface{}{"name": "   "}, true)
	assert.Error(t, err)
}

func TestValidateEnum(t *testing.T) {
	rules := testRules()

	assert.NoError(t, rules.Validate(map[string]interface{}{"name": "a", "kind": "van"}, false))

	// Enum comparison is case-insensitive on the candidate side.
	assert.NoError(t, rules.Validate(map[string]interface{}{"name": "a", "kind": "Sedan"}, false))

	err := rules.Validate(map[string]interface{}{"name": "a", "kind": "hovercraft"}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hovercraft")
}

func TestValidateNumericBounds(t *testing.T) {
	rules := testRules()

	for _, year := range []int{1980, 2000, 2025} {
		doc := map[string]interface{}{"name": "a", "year": year}
		assert.NoError(t, rules.Validate(doc, false), "year %d", year)
	}
	for _, year := range []int{1979, 2026} {
		doc := map[string]interface{}{"name": "a", "year": year}
		assert.Error(t, rules.Validate(doc, false), "year %d", year)
	}

	assert.Error(t, rules.Validate(map[string]interface{}{"name": "a", "mileage": -1.0}, false))
	assert.NoError(t, rules.Validate(map[string]interface{}{"name": "a", "mileage": 0.0}, false))
}

func TestValidateNumericDecodedKinds(t *testing.T) {
	rules := testRules()

	// Documents read back from the store carry int32/int64/float64.
	for _, v := range []interface{}{int32(1990), int64(1990), float64(1990)} {
		doc := map[string]interface{}{"name": "a", "year": v}
		assert.NoError(t, rules.Validate(doc, false))
	}

	err := rules.Validate(map[string]interface{}{"name": "a", "year": "1990"}, false)
	assert.Error(t, err)
}

func TestValidateKindMismatch(t *testing.T) {
	rules := testRules()

	assert.Error(t, rules.Validate(map[string]interface{}{"name": 42}, false))
	assert.Error(t, rules.Validate(map[string]interface{}{"name": "a", "shared": "yes"}, false))
	assert.NoError(t, rules.Validate(map[string]interface{}{"name": "a", "shared": true}, false))
}

func TestNormalizeLowercasesMarkedAndEnumFields(t *testing.T) {
	rules := testRules()

	doc := map[string]interface{}{"name": "Toyota", "kind": "Sedan", "note": "Brand New"}
	rules.Normalize(doc)
	assert.Equal(t, "toyota", doc["name"])
	assert.Equal(t, "sedan", doc["kind"])
	assert.Equal(t, "Brand New", doc["note"])
}

// A case variant accepted by the enum check must be folded to the
// enumeration member on write, so exact-match filters can find it.
func TestCaseVariantEnumValueStoredAsMember(t *testing.T) {
	rules := testRules()

	doc := map[string]interface{}{"name": "a", "kind": "Van"}
	require.NoError(t, rules.Validate(doc, false))
	rules.Normalize(doc)
	assert.Equal(t, "van", doc["kind"])
}

func TestErrorMessageNamesField(t *testing.T) {
	err := &Error{Field: "vinNumber", Reason: "required field is missing"}
	assert.Contains(t, err.Error(), "vinNumber")
	assert.Contains(t, err.Error(), "required field is missing")
}
