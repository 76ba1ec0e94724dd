package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalar_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Scalar
		wantErr bool
	}{
		{name: "string", input: `"CS101"`, want: "CS101"},
		{name: "integer", input: `2`, want: "2"},
		{name: "large integer keeps digits", input: `12345678901234567890`, want: "12345678901234567890"},
		{name: "decimal keeps literal", input: `2.50`, want: "2.50"},
		{name: "boolean", input: `true`, want: "true"},
		{name: "false is present", input: `false`, want: "false"},
		{name: "null keeps previous", input: `null`, want: "prev"},
		{name: "object", input: `{"a":1}`, want: "prev", wantErr: true},
		{name: "array", input: `[1]`, want: "prev", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Scalar("prev")
			err := json.Unmarshal([]byte(tt.input), &s)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestUser_UnmarshalAcceptsNumbers(t *testing.T) {
	var u User
	err := json.Unmarshal([]byte(`{
		"id": 7, "username": 12345, "password": "pw", "role": "student", "name": "A",
		"studentId": 12345, "phone": 9876543210, "year": 2,
		"registeredAt": "2026-01-02T03:04:05.000Z"
	}`), &u)
	require.NoError(t, err)

	assert.Equal(t, "7", u.ID)
	assert.Equal(t, "12345", u.Username)
	assert.Equal(t, RoleStudent, u.Role)
	assert.Equal(t, "12345", u.StudentID)
	assert.Equal(t, "9876543210", u.Phone)
	assert.Equal(t, "2", u.Year)
	require.NotNil(t, u.RegisteredAt)
	assert.Equal(t, 2026, u.RegisteredAt.Year())
}

func TestPass_UnmarshalAcceptsNumbers(t *testing.T) {
	var p Pass
	err := json.Unmarshal([]byte(`{
		"id": "1", "studentId": 12345, "reason": "Medical", "category": "general",
		"returnTime": 1800, "notes": "", "status": "approved", "moderatorRemarks": false,
		"requestedAt": "2026-01-02T03:04:05.000Z", "approvedAt": null, "usedAt": null
	}`), &p)
	require.NoError(t, err)

	assert.Equal(t, "12345", p.StudentID)
	require.NotNil(t, p.ReturnTime)
	assert.Equal(t, "1800", *p.ReturnTime)
	assert.Equal(t, "false", p.ModeratorRemarks)
	assert.True(t, p.IsApproved())
	assert.Equal(t, 2026, p.RequestedAt.Year())
	assert.Nil(t, p.ApprovedAt)
}

func TestPass_UnmarshalNullReturnTime(t *testing.T) {
	var p Pass
	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","returnTime":null}`), &p))
	assert.Nil(t, p.ReturnTime)
}

func TestPass_UnmarshalRejectsObjects(t *testing.T) {
	var p Pass
	assert.Error(t, json.Unmarshal([]byte(`{"id":"1","reason":{"a":1}}`), &p))
}
