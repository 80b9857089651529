package model

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
)

// Permissions is the fixed capability set attached to every user. It is
// stored as a JSON column but the shape is closed: unknown keys coming
// from the client are dropped on unmarshal instead of being carried
// around as free-form data.
type Permissions struct {
	CanViewDashboard  bool `json:"canViewDashboard"`
	CanViewResidences bool `json:"canViewResidences"`
	CanViewClients    bool `json:"canViewClients"`
	CanViewCharges    bool `json:"canViewCharges"`
	CanViewUsers      bool `json:"canViewUsers"`

	CanCreateResidences bool `json:"canCreateResidences"`
	CanEditResidences   bool `json:"canEditResidences"`
	CanDeleteResidences bool `json:"canDeleteResidences"`
	CanExportResidences bool `json:"canExportResidences"`

	CanCreateClients bool `json:"canCreateClients"`
	CanEditClients   bool `json:"canEditClients"`
	CanDeleteClients bool `json:"canDeleteClients"`
	CanExportClients bool `json:"canExportClients"`

	CanCreateCharges bool `json:"canCreateCharges"`
	CanEditCharges   bool `json:"canEditCharges"`
	CanDeleteCharges bool `json:"canDeleteCharges"`
	CanExportCharges bool `json:"canExportCharges"`

	CanCreateUsers bool `json:"canCreateUsers"`
	CanEditUsers   bool `json:"canEditUsers"`
	CanDeleteUsers bool `json:"canDeleteUsers"`

	CanCreateNotifications bool `json:"canCreateNotifications"`
	CanViewNotifications   bool `json:"canViewNotifications"`

	CanViewDashboardCharges  bool `json:"canViewDashboardCharges"`
	CanViewDashboardRevenues bool `json:"canViewDashboardRevenues"`
	CanViewDashboardBalance  bool `json:"canViewDashboardBalance"`

	CanViewFinancialData bool `json:"canViewFinancialData"`
	CanExportData        bool `json:"canExportData"`
	CanManageSettings    bool `json:"canManageSettings"`
}

// DefaultUserPermissions is what a freshly created non-admin account
// gets: read access to the main screens, no mutations.
func DefaultUserPermissions() Permissions {
	return Permissions{
		CanViewDashboard:         true,
		CanViewResidences:        true,
		CanViewClients:           true,
		CanViewCharges:           true,
		CanViewNotifications:     true,
		CanViewDashboardCharges:  true,
		CanViewDashboardRevenues: true,
		CanViewDashboardBalance:  true,
	}
}

// AdminPermissions grants every capability.
func AdminPermissions() Permissions {
	return Permissions{
		CanViewDashboard:  true,
		CanViewResidences: true,
		CanViewClients:    true,
		CanViewCharges:    true,
		CanViewUsers:      true,

		CanCreateResidences: true,
		CanEditResidences:   true,
		CanDeleteResidences: true,
		CanExportResidences: true,

		CanCreateClients: true,
		CanEditClients:   true,
		CanDeleteClients: true,
		CanExportClients: true,

		CanCreateCharges: true,
		CanEditCharges:   true,
		CanDeleteCharges: true,
		CanExportCharges: true,

		CanCreateUsers: true,
		CanEditUsers:   true,
		CanDeleteUsers: true,

		CanCreateNotifications: true,
		CanViewNotifications:   true,

		CanViewDashboardCharges:  true,
		CanViewDashboardRevenues: true,
		CanViewDashboardBalance:  true,

		CanViewFinancialData: true,
		CanExportData:        true,
		CanManageSettings:    true,
	}
}

// Has resolves a capability by its JSON name. Unknown names are always
// false, so a typo in a route guard fails closed.
func (p Permissions) Has(name string) bool {
	switch name {
	case "canViewDashboard":
		return p.CanViewDashboard
	case "canViewResidences":
		return p.CanViewResidences
	case "canViewClients":
		return p.CanViewClients
	case "canViewCharges":
		return p.CanViewCharges
	case "canViewUsers":
		return p.CanViewUsers
	case "canCreateResidences":
		return p.CanCreateResidences
	case "canEditResidences":
		return p.CanEditResidences
	case "canDeleteResidences":
		return p.CanDeleteResidences
	case "canExportResidences":
		return p.CanExportResidences
	case "canCreateClients":
		return p.CanCreateClients
	case "canEditClients":
		return p.CanEditClients
	case "canDeleteClients":
		return p.CanDeleteClients
	case "canExportClients":
		return p.CanExportClients
	case "canCreateCharges":
		return p.CanCreateCharges
	case "canEditCharges":
		return p.CanEditCharges
	case "canDeleteCharges":
		return p.CanDeleteCharges
	case "canExportCharges":
		return p.CanExportCharges
	case "canCreateUsers":
		return p.CanCreateUsers
	case "canEditUsers":
		return p.CanEditUsers
	case "canDeleteUsers":
		return p.CanDeleteUsers
	case "canCreateNotifications":
		return p.CanCreateNotifications
	case "canViewNotifications":
		return p.CanViewNotifications
	case "canViewDashboardCharges":
		return p.CanViewDashboardCharges
	case "canViewDashboardRevenues":
		return p.CanViewDashboardRevenues
	case "canViewDashboardBalance":
		return p.CanViewDashboardBalance
	case "canViewFinancialData":
		return p.CanViewFinancialData
	case "canExportData":
		return p.CanExportData
	case "canManageSettings":
		return p.CanManageSettings
	}
	return false
}

// Value / Scan let gorm persist the struct as a JSON text column.
func (p Permissions) Value() (driver.Value, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, errors.Wrap(err, "marshal permissions")
	}
	return string(b), nil
}

func (p *Permissions) Scan(src interface{}) error {
	if src == nil {
		*p = Permissions{}
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.Errorf("unsupported permissions column type %T", src)
	}
	return errors.Wrap(json.Unmarshal(b, p), "unmarshal permissions")
}
