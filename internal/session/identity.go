package session

import (
	"github.com/SAP-F-2025/skill-test-service/internal/models"
)

// extractor reads one candidate value for an identity field.
type extractor struct {
	source string
	read   func(models.SessionParameters) any
}

// fallbackChain is evaluated in order; the first present value wins.
type fallbackChain []extractor

func (c fallbackChain) first(p models.SessionParameters) (value any, source string) {
	for _, ex := range c {
		if v := ex.read(p); present(v) {
			return v, ex.source
		}
	}
	return nil, ""
}

var (
	employeeIDChain = fallbackChain{
		{"employeeId", func(p models.SessionParameters) any { return p.EmployeeID }},
		{"employeeInfo.id", infoField("id")},
		{"employeeInfo.employee_id", infoField("employee_id")},
		{"employeeInfo.emp_id", infoField("emp_id")},
	}

	employeeNameChain = fallbackChain{
		{"employeeInfo.name", infoField("name")},
		{"employeeInfo.employee_name", infoField("employee_name")},
	}

	employeePositionChain = fallbackChain{
		{"employeeInfo.roles[0]", infoFirstOf("roles")},
		{"employeeRoles[0]", func(p models.SessionParameters) any { return firstOf(p.EmployeeRoles) }},
		{"employeeInfo.position", infoField("position")},
		{"employeeInfo.role", infoField("role")},
	}
)

func ResolveEmployeeID(p models.SessionParameters) any {
	v, _ := employeeIDChain.first(p)
	return v
}

func ResolveEmployeeName(p models.SessionParameters) any {
	v, _ := employeeNameChain.first(p)
	return v
}

func ResolveEmployeePosition(p models.SessionParameters) any {
	v, _ := employeePositionChain.first(p)
	return v
}

func infoField(key string) func(models.SessionParameters) any {
	return func(p models.SessionParameters) any {
		if p.EmployeeInfo == nil {
			return nil
		}
		return p.EmployeeInfo[key]
	}
}

func infoFirstOf(key string) func(models.SessionParameters) any {
	return func(p models.SessionParameters) any {
		if p.EmployeeInfo == nil {
			return nil
		}
		switch list := p.EmployeeInfo[key].(type) {
		case []any:
			return firstOf(list)
		case []string:
			if len(list) > 0 {
				return list[0]
			}
		}
		return nil
	}
}

func firstOf(list []any) any {
	if len(list) == 0 {
		return nil
	}
	return list[0]
}

// present treats nil, "", false and numeric zero as missing.
func present(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case bool:
		return x
	case float64:
		return x != 0
	case int:
		return x != 0
	case int64:
		return x != 0
	}
	return true
}
