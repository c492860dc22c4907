package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SAP-F-2025/skill-test-service/internal/models"
)

func TestEmployeeIDChain(t *testing.T) {
	tests := []struct {
		name   string
		params models.SessionParameters
		want   any
		source string
	}{
		{
			name: "override wins",
			params: models.SessionParameters{
				EmployeeID:   "override",
				EmployeeInfo: models.EmployeeInfo{"id": "info-id"},
			},
			want:   "override",
			source: "employeeId",
		},
		{
			name:   "empty override falls through to id",
			params: models.SessionParameters{EmployeeID: "", EmployeeInfo: models.EmployeeInfo{"id": float64(42)}},
			want:   float64(42),
			source: "employeeInfo.id",
		},
		{
			name:   "employee_id before emp_id",
			params: models.SessionParameters{EmployeeInfo: models.EmployeeInfo{"employee_id": "E1", "emp_id": "E2"}},
			want:   "E1",
			source: "employeeInfo.employee_id",
		},
		{
			name:   "emp_id last",
			params: models.SessionParameters{EmployeeInfo: models.EmployeeInfo{"emp_id": "E2"}},
			want:   "E2",
			source: "employeeInfo.emp_id",
		},
		{
			name:   "nothing",
			params: models.SessionParameters{},
			want:   nil,
			source: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, source := employeeIDChain.first(tt.params)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.source, source)
		})
	}
}

func TestEmployeeNameChain(t *testing.T) {
	assert.Equal(t, "Ann", ResolveEmployeeName(models.SessionParameters{
		EmployeeInfo: models.EmployeeInfo{"name": "Ann", "employee_name": "Other"},
	}))
	assert.Equal(t, "Other", ResolveEmployeeName(models.SessionParameters{
		EmployeeInfo: models.EmployeeInfo{"employee_name": "Other"},
	}))
	assert.Nil(t, ResolveEmployeeName(models.SessionParameters{}))
}

func TestEmployeePositionChain(t *testing.T) {
	tests := []struct {
		name   string
		params models.SessionParameters
		want   any
	}{
		{
			name: "info roles first",
			params: models.SessionParameters{
				EmployeeInfo:  models.EmployeeInfo{"roles": []any{"Lead", "Dev"}, "position": "P"},
				EmployeeRoles: []any{"Session role"},
			},
			want: "Lead",
		},
		{
			name: "empty info roles falls to session roles",
			params: models.SessionParameters{
				EmployeeInfo:  models.EmployeeInfo{"roles": []any{}},
				EmployeeRoles: []any{"Session role"},
			},
			want: "Session role",
		},
		{
			name:   "position field",
			params: models.SessionParameters{EmployeeInfo: models.EmployeeInfo{"position": "Analyst", "role": "R"}},
			want:   "Analyst",
		},
		{
			name:   "role field last",
			params: models.SessionParameters{EmployeeInfo: models.EmployeeInfo{"role": "Tester"}},
			want:   "Tester",
		},
		{
			name:   "typed string slice",
			params: models.SessionParameters{EmployeeInfo: models.EmployeeInfo{"roles": []string{"Ops"}}},
			want:   "Ops",
		},
		{
			name:   "none",
			params: models.SessionParameters{EmployeeInfo: models.EmployeeInfo{}},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveEmployeePosition(tt.params))
		})
	}
}

func TestPresent(t *testing.T) {
	assert.False(t, present(nil))
	assert.False(t, present(""))
	assert.False(t, present(false))
	assert.False(t, present(float64(0)))
	assert.True(t, present("x"))
	assert.True(t, present(float64(3)))
	assert.True(t, present(map[string]any{}))
}
