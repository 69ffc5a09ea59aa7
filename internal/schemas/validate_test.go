package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_JDAnalysisValid(t *testing.T) {
	doc := `{
		"required_skills": ["python", "go"],
		"preferred_skills": ["docker"],
		"keywords": ["api"],
		"domain": "Web Development",
		"seniority": "Senior"
	}`
	assert.NoError(t, Validate(JDAnalysisSchema, doc))
}

func TestValidate_JDAnalysisMissingRequiredField(t *testing.T) {
	doc := `{"required_skills": ["python"]}`
	err := Validate(JDAnalysisSchema, doc)
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotEmpty(t, ve.Errors)
}

func TestValidate_JDAnalysisWrongType(t *testing.T) {
	doc := `{"required_skills": "python", "preferred_skills": [], "keywords": []}`
	err := Validate(JDAnalysisSchema, doc)
	require.Error(t, err)
}

func TestValidate_SectionContentValid(t *testing.T) {
	doc := `{
		"summary": "\\textbf{Backend engineer}",
		"skills": "\\item Python",
		"projects": "",
		"experiences": ""
	}`
	assert.NoError(t, Validate(SectionContentSchema, doc))
}

func TestValidate_SectionContentNonStringValue(t *testing.T) {
	doc := `{"summary": 42}`
	err := Validate(SectionContentSchema, doc)
	require.Error(t, err)
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("missing.schema.json", `{}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.schema.json")
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(JDAnalysisSchema, `{not json`)
	require.Error(t, err)
}
