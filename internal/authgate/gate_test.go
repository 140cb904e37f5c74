package authgate

import (
	"testing"

	"github.com/edusync-app/school-service/internal/models"
)

func userWithRole(role models.UserRole) *models.User {
	return &models.User{ID: 1, Name: "Test User", Email: "test@edusync.local", Role: role}
}

func TestAuthorize(t *testing.T) {
	type args struct {
		session      Session
		allowedRoles []models.UserRole
	}
	tests := []struct {
		name string
		args args
		want Decision
	}{
		{
			name: "loading defers even when unauthenticated",
			args: args{session: Session{IsLoading: true}},
			want: DecisionLoading,
		},
		{
			name: "loading defers even with a loaded user",
			args: args{session: Session{IsLoading: true, IsAuthenticated: true, User: userWithRole(models.RoleAdmin)}},
			want: DecisionLoading,
		},
		{
			name: "unauthenticated redirects to login",
			args: args{session: Session{}},
			want: DecisionRedirectToLogin,
		},
		{
			name: "authenticated flag without user still redirects to login",
			args: args{session: Session{IsAuthenticated: true}},
			want: DecisionRedirectToLogin,
		},
		{
			name: "nil allow-list admits any authenticated role",
			args: args{session: Session{IsAuthenticated: true, User: userWithRole(models.RoleClub)}},
			want: DecisionAllow,
		},
		{
			name: "empty allow-list admits any authenticated role",
			args: args{
				session:      Session{IsAuthenticated: true, User: userWithRole(models.RoleFinancial)},
				allowedRoles: []models.UserRole{},
			},
			want: DecisionAllow,
		},
		{
			name: "role on the list is allowed",
			args: args{
				session:      Session{IsAuthenticated: true, User: userWithRole(models.RoleTeacher)},
				allowedRoles: []models.UserRole{models.RoleTeacher, models.RoleAdmin},
			},
			want: DecisionAllow,
		},
		{
			name: "role off the list is denied",
			args: args{
				session:      Session{IsAuthenticated: true, User: userWithRole(models.RoleLibrary)},
				allowedRoles: []models.UserRole{models.RoleTeacher, models.RoleAdmin},
			},
			want: DecisionRedirectToUnauthorized,
		},
		{
			name: "student-only route denies admin (flat, no hierarchy)",
			args: args{
				session:      Session{IsAuthenticated: true, User: userWithRole(models.RoleAdmin)},
				allowedRoles: []models.UserRole{models.RoleStudent},
			},
			want: DecisionRedirectToUnauthorized,
		},
		{
			name: "super-admin route denies admin",
			args: args{
				session:      Session{IsAuthenticated: true, User: userWithRole(models.RoleAdmin)},
				allowedRoles: []models.UserRole{models.RoleSuperAdmin},
			},
			want: DecisionRedirectToUnauthorized,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Authorize(tt.args.session, tt.args.allowedRoles); got != tt.want {
				t.Errorf("Authorize() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Every role on an open route must be allowed; every role off a one-role
// list must be denied except the listed one.
func TestAuthorizeRoleMatrix(t *testing.T) {
	for _, role := range models.AllRoles {
		session := Session{IsAuthenticated: true, User: userWithRole(role)}

		if got := Authorize(session, nil); got != DecisionAllow {
			t.Errorf("open route denied role %s: %v", role, got)
		}

		for _, allowed := range models.AllRoles {
			got := Authorize(session, []models.UserRole{allowed})
			if role == allowed && got != DecisionAllow {
				t.Errorf("role %s denied on own route: %v", role, got)
			}
			if role != allowed && got != DecisionRedirectToUnauthorized {
				t.Errorf("role %s admitted on %s-only route: %v", role, allowed, got)
			}
		}
	}
}

// Authorize is a pure function: repeated calls with the same input yield
// the same decision.
func TestAuthorizeIdempotent(t *testing.T) {
	session := Session{IsAuthenticated: true, User: userWithRole(models.RolePrincipal)}
	allowed := []models.UserRole{models.RolePrincipal}

	first := Authorize(session, allowed)
	for i := 0; i < 10; i++ {
		if got := Authorize(session, allowed); got != first {
			t.Fatalf("call %d returned %v, first returned %v", i, got, first)
		}
	}
}
