package domain

import "github.com/golang-jwt/jwt/v5"

// Papéis de acesso à API
const (
	RoleAdmin  = 1
	RoleViewer = 2
	RoleIngest = 3
)

var roleNames = map[int]string{
	RoleAdmin:  "admin",
	RoleViewer: "viewer",
	RoleIngest: "ingest",
}

// RoleFromName converte o nome do papel; retorna 0 para nomes desconhecidos
func RoleFromName(name string) int {
	for id, roleName := range roleNames {
		if roleName == name {
			return id
		}
	}
	return 0
}

func RoleName(roleID int) string {
	return roleNames[roleID]
}

// Claims identifica o portador de um token de API
type Claims struct {
	Name   string `json:"name"`
	RoleID int    `json:"role_id"`
	jwt.RegisteredClaims
}
