package authz

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/shenikar/disaster_response_system/internal/models"
)

// Объекты и действия политики
const (
	ObjResources = "resources"
	ObjAlerts    = "alerts"
	ObjUsers     = "users"
	ObjZones     = "zones"
	ObjIncidents = "incidents"
	ObjSummary   = "summary"

	ActManage    = "manage"
	ActRead      = "read"
	ActReport    = "report"
	ActReadAll   = "read_all"
	ActModifyAll = "modify_all"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// admin наследует все права user
var defaultPolicy = [][]string{
	{string(models.RoleUser), ObjIncidents, ActReport},
	{string(models.RoleUser), ObjIncidents, ActRead},
	{string(models.RoleAdmin), ObjIncidents, ActReadAll},
	{string(models.RoleAdmin), ObjIncidents, ActModifyAll},
	{string(models.RoleAdmin), ObjResources, ActManage},
	{string(models.RoleAdmin), ObjAlerts, ActManage},
	{string(models.RoleAdmin), ObjUsers, ActManage},
	{string(models.RoleAdmin), ObjZones, ActManage},
	{string(models.RoleAdmin), ObjSummary, ActRead},
}

// Authorizer - единая точка проверки прав по роли принципала
type Authorizer struct {
	enforcer *casbin.Enforcer
}

func NewAuthorizer() (*Authorizer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("failed to load authorization model: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create enforcer: %w", err)
	}
	if _, err := enforcer.AddPolicies(defaultPolicy); err != nil {
		return nil, fmt.Errorf("failed to load authorization policy: %w", err)
	}
	if _, err := enforcer.AddGroupingPolicy(string(models.RoleAdmin), string(models.RoleUser)); err != nil {
		return nil, fmt.Errorf("failed to load role hierarchy: %w", err)
	}
	return &Authorizer{enforcer: enforcer}, nil
}

// Can проверяет право принципала. Анонимный принципал не имеет прав
func (a *Authorizer) Can(p *models.Principal, obj, act string) bool {
	if p == nil {
		return false
	}
	ok, err := a.enforcer.Enforce(string(p.Role), obj, act)
	return err == nil && ok
}

func (a *Authorizer) CanManageResources(p *models.Principal) bool {
	return a.Can(p, ObjResources, ActManage)
}

func (a *Authorizer) CanManageAlerts(p *models.Principal) bool {
	return a.Can(p, ObjAlerts, ActManage)
}

func (a *Authorizer) CanManageUsers(p *models.Principal) bool {
	return a.Can(p, ObjUsers, ActManage)
}

func (a *Authorizer) CanManageZones(p *models.Principal) bool {
	return a.Can(p, ObjZones, ActManage)
}

func (a *Authorizer) CanViewAllIncidents(p *models.Principal) bool {
	return a.Can(p, ObjIncidents, ActReadAll)
}

func (a *Authorizer) CanViewSummary(p *models.Principal) bool {
	return a.Can(p, ObjSummary, ActRead)
}

// IncidentScope возвращает предикат видимости инцидентов для принципала.
// Администратор видит все, пользователь только свои
func (a *Authorizer) IncidentScope(p *models.Principal) (models.IncidentFilter, error) {
	if p == nil {
		return models.IncidentFilter{}, fmt.Errorf("principal required: %w", models.ErrUnauthorized)
	}
	if a.CanViewAllIncidents(p) {
		return models.IncidentFilter{}, nil
	}
	if !a.Can(p, ObjIncidents, ActRead) {
		return models.IncidentFilter{}, fmt.Errorf("role %q cannot read incidents: %w", p.Role, models.ErrForbidden)
	}
	owner := p.UserID
	return models.IncidentFilter{ReportedBy: &owner}, nil
}

// CanModifyIncident - администратор может менять любой инцидент, автор только свой
func (a *Authorizer) CanModifyIncident(p *models.Principal, incident *models.Incident) bool {
	if p == nil || incident == nil {
		return false
	}
	if a.Can(p, ObjIncidents, ActModifyAll) {
		return true
	}
	return incident.ReportedBy != nil && *incident.ReportedBy == p.UserID
}
