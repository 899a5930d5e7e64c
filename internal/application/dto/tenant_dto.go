package dto

import "time"

// TenantResponse representação externa de um tenant (escritório assinante).
type TenantResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Plan          string    `json:"plan"`
	Status        string    `json:"status"`
	UsersCount    int       `json:"users_count"`
	StorageUsedGB float64   `json:"storage_used_gb"`
	JoinedAt      time.Time `json:"joined_at"`
}

// TenantPatch edição administrativa de um tenant.
type TenantPatch struct {
	Name          *string  `json:"name"`
	Plan          *string  `json:"plan"`
	Status        *string  `json:"status"`
	UsersCount    *int     `json:"users_count"`
	StorageUsedGB *float64 `json:"storage_used_gb"`
}
