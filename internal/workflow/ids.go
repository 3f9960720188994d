package workflow

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"task-approval-api/internal/models"
)

// newTaskID generates a task ID (simple format: task-{timestamp})
func newTaskID() string {
	return fmt.Sprintf("task-%d", time.Now().UnixNano())
}

func newMemberID() string {
	return fmt.Sprintf("member-%d", time.Now().UnixNano())
}

func newProjectID() string {
	return fmt.Sprintf("project-%d", time.Now().UnixNano())
}

// newUserID builds the human-facing account id handed out at
// provisioning, e.g. STF-JOHN-K3X9 for a staff john@company.com.
func newUserID(email string, role models.SystemRole) string {
	prefix := "USR"
	switch role {
	case models.RoleStaff:
		prefix = "STF"
	case models.RoleAdmin:
		prefix = "ADM"
	case models.RoleSuperadmin:
		prefix = "SPA"
	}

	local := email
	if at := strings.Index(email, "@"); at > 0 {
		local = email[:at]
	}
	if len(local) > 4 {
		local = local[:4]
	}

	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	if len(ts) > 4 {
		ts = ts[len(ts)-4:]
	}

	return fmt.Sprintf("%s-%s-%s", prefix, strings.ToUpper(local), strings.ToUpper(ts))
}

// newOTP returns a 6-digit one-time password.
func newOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

// today returns the current date as YYYY-MM-DD, the format all task
// dates are stored in.
func today() string {
	return time.Now().Format("2006-01-02")
}
