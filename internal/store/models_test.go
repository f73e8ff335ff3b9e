package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromJSONPartialPatchLeavesFieldsNil(t *testing.T) {
	patch, err := FromJSON[TaskPatch]([]byte(`{"Title":"renamed","Completed":true}`))
	require.NoError(t, err)
	require.NotNil(t, patch.Title)
	assert.Equal(t, "renamed", *patch.Title)
	require.NotNil(t, patch.Completed)
	assert.True(t, *patch.Completed)

	// Absent keys stay nil so apply leaves those fields alone.
	assert.Nil(t, patch.Priority)
	assert.Nil(t, patch.DueDate)
	assert.Nil(t, patch.ScheduledTime)
}

func TestFromJSONRejectsMalformedInput(t *testing.T) {
	_, err := FromJSON[Note]([]byte(`{"title":`))
	assert.Error(t, err)
}

func TestToJSONOmitsUnsetOptionalFields(t *testing.T) {
	data, err := ToJSON(Task{ID: "t1", Title: "write report"})
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"id":"t1"`)
	assert.NotContains(t, s, "dueDate")
	assert.NotContains(t, s, "scheduledTime")
}
