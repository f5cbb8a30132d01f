package jobs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotifyBriefTask(t *testing.T) {
	task, err := NewNotifyBriefTask("sub-42")
	require.NoError(t, err)

	assert.Equal(t, TaskTypeNotifyBrief, task.Type())

	var payload NotifyBriefPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "sub-42", payload.SubmissionID)
}
