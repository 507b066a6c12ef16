package dashboard

import "errors"

var ErrNoEmployeeProfile = errors.New("current user has no employee profile")

var ErrAdminDashboardForbidden = errors.New("admin dashboard requires dashboard.view_admin")
