package workflow

import (
	"errors"
	"testing"

	"task-approval-api/internal/models"
	"task-approval-api/internal/testutil"

	"github.com/stretchr/testify/require"
)

var (
	staffActor      = Actor{Name: "Sam Staff", Email: "sam@company.com", Role: models.RoleStaff}
	adminActor      = Actor{Name: "Alice Admin", Email: "alice@company.com", Role: models.RoleAdmin}
	superadminActor = Actor{Name: "Sue Super", Email: "sue@company.com", Role: models.RoleSuperadmin}
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	return NewEngine(db)
}

func createTestTask(t *testing.T, e *Engine) *models.Task {
	t.Helper()
	task, err := e.CreateTask(CreateTaskInput{
		Title:       "Design UI Mockups",
		Description: "Create UI mockups for the new dashboard",
		Priority:    models.PriorityHigh,
		DueDate:     "2027-02-20",
		AssignedTo:  staffActor.Email,
	}, adminActor)
	require.NoError(t, err)
	return task
}

func TestCreateTask_InitialState(t *testing.T) {
	e := newTestEngine(t)

	task := createTestTask(t, e)
	require.NotEmpty(t, task.ID)
	require.Equal(t, models.StatusPending, task.Status)
	require.Equal(t, models.ApprovalAssigned, task.ApprovalStatus)
	require.Equal(t, adminActor.Email, task.AssignedBy)
	require.NotEmpty(t, task.CreatedDate)

	other := createTestTask(t, e)
	require.NotEqual(t, task.ID, other.ID)
}

func TestCreateTask_StaffDenied(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.CreateTask(CreateTaskInput{
		Title:       "t",
		Description: "d",
		DueDate:     "2027-01-01",
		AssignedTo:  staffActor.Email,
	}, staffActor)
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestCreateTask_MissingFields(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.CreateTask(CreateTaskInput{
		Description: "d",
		DueDate:     "2027-01-01",
		AssignedTo:  staffActor.Email,
	}, adminActor)
	require.ErrorIs(t, err, ErrValidation)

	_, err = e.CreateTask(CreateTaskInput{
		Title:       "t",
		Description: "d",
		AssignedTo:  staffActor.Email,
	}, adminActor)
	require.ErrorIs(t, err, ErrValidation)
}

func TestApprovalChain_HappyPath(t *testing.T) {
	e := newTestEngine(t)
	task := createTestTask(t, e)

	task, err := e.SubmitCompletion(task.ID, "done", staffActor)
	require.NoError(t, err)
	require.Equal(t, models.ApprovalInReview, task.ApprovalStatus)
	require.Equal(t, models.StatusCompleted, task.Status)
	require.Equal(t, "done", task.CompletionNotes)

	task, err = e.ReviewAsAdmin(task.ID, true, "looks good", adminActor)
	require.NoError(t, err)
	require.Equal(t, models.ApprovalAdminApproved, task.ApprovalStatus)
	require.Equal(t, adminActor.Name, task.AdminReviewedBy)
	require.NotEmpty(t, task.AdminReviewedAt)
	require.Equal(t, "looks good", task.AdminComments)

	task, err = e.ReviewAsSuperadmin(task.ID, true, "confirmed", superadminActor)
	require.NoError(t, err)
	require.Equal(t, models.ApprovalSuperadminApproved, task.ApprovalStatus)
	require.Equal(t, superadminActor.Name, task.SuperadminReviewedBy)
}

func TestRejectionCycle(t *testing.T) {
	e := newTestEngine(t)
	task := createTestTask(t, e)

	task, err := e.SubmitCompletion(task.ID, "done", staffActor)
	require.NoError(t, err)

	task, err = e.ReviewAsAdmin(task.ID, false, "needs more detail", adminActor)
	require.NoError(t, err)
	require.Equal(t, models.ApprovalRejected, task.ApprovalStatus)
	require.Equal(t, models.StatusInProgress, task.Status)

	// the cycle closes: the assignee resubmits and notes are overwritten
	task, err = e.SubmitCompletion(task.ID, "revised", staffActor)
	require.NoError(t, err)
	require.Equal(t, models.ApprovalInReview, task.ApprovalStatus)
	require.Equal(t, "revised", task.CompletionNotes)
}

func TestSuperadminRejection_ReturnsToAssignee(t *testing.T) {
	e := newTestEngine(t)
	task := createTestTask(t, e)

	_, err := e.SubmitCompletion(task.ID, "done", staffActor)
	require.NoError(t, err)
	_, err = e.ReviewAsAdmin(task.ID, true, "", adminActor)
	require.NoError(t, err)

	task, err = e.ReviewAsSuperadmin(task.ID, false, "redo the palette", superadminActor)
	require.NoError(t, err)
	require.Equal(t, models.ApprovalRejected, task.ApprovalStatus)
	require.Equal(t, models.StatusInProgress, task.Status)

	task, err = e.SubmitCompletion(task.ID, "third time", staffActor)
	require.NoError(t, err)
	require.Equal(t, models.ApprovalInReview, task.ApprovalStatus)
}

func TestSubmitCompletion_NotAssignee(t *testing.T) {
	e := newTestEngine(t)
	task := createTestTask(t, e)

	_, err := e.SubmitCompletion(task.ID, "done", Actor{
		Name: "Other", Email: "other@company.com", Role: models.RoleStaff,
	})
	require.ErrorIs(t, err, ErrPermissionDenied)

	// task unchanged
	got, err := e.TaskByID(task.ID)
	require.NoError(t, err)
	require.Equal(t, models.ApprovalAssigned, got.ApprovalStatus)
	require.Equal(t, models.StatusPending, got.Status)
	require.Empty(t, got.CompletionNotes)
}

func TestSubmitCompletion_UnknownTask(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.SubmitCompletion("task-nope", "done", staffActor)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitCompletion_EmptyNotes(t *testing.T) {
	e := newTestEngine(t)
	task := createTestTask(t, e)

	_, err := e.SubmitCompletion(task.ID, "  ", staffActor)
	require.ErrorIs(t, err, ErrValidation)
}

func TestReviewAsAdmin_RejectRequiresComments(t *testing.T) {
	e := newTestEngine(t)
	task := createTestTask(t, e)
	_, err := e.SubmitCompletion(task.ID, "done", staffActor)
	require.NoError(t, err)

	_, err = e.ReviewAsAdmin(task.ID, false, "", adminActor)
	require.ErrorIs(t, err, ErrValidation)

	got, err := e.TaskByID(task.ID)
	require.NoError(t, err)
	require.Equal(t, models.ApprovalInReview, got.ApprovalStatus)
}

func TestReviewAsAdmin_RoleRequired(t *testing.T) {
	e := newTestEngine(t)
	task := createTestTask(t, e)
	_, err := e.SubmitCompletion(task.ID, "done", staffActor)
	require.NoError(t, err)

	_, err = e.ReviewAsAdmin(task.ID, true, "", staffActor)
	require.ErrorIs(t, err, ErrPermissionDenied)

	// superadmin does not stand in for admin at the first review stage
	_, err = e.ReviewAsAdmin(task.ID, true, "", superadminActor)
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestReview_StageGuards(t *testing.T) {
	e := newTestEngine(t)
	task := createTestTask(t, e)

	// not yet submitted
	_, err := e.ReviewAsAdmin(task.ID, true, "", adminActor)
	require.ErrorIs(t, err, ErrInvalidState)
	_, err = e.ReviewAsSuperadmin(task.ID, true, "", superadminActor)
	require.ErrorIs(t, err, ErrInvalidState)

	_, err = e.SubmitCompletion(task.ID, "done", staffActor)
	require.NoError(t, err)

	// superadmin cannot skip the admin stage
	_, err = e.ReviewAsSuperadmin(task.ID, true, "", superadminActor)
	require.ErrorIs(t, err, ErrInvalidState)

	_, err = e.ReviewAsAdmin(task.ID, true, "", adminActor)
	require.NoError(t, err)

	// a second admin review of the same task fails
	_, err = e.ReviewAsAdmin(task.ID, true, "again", adminActor)
	require.ErrorIs(t, err, ErrInvalidState)

	_, err = e.ReviewAsSuperadmin(task.ID, true, "", superadminActor)
	require.NoError(t, err)

	// terminal: nothing moves a superadmin-approved task
	_, err = e.SubmitCompletion(task.ID, "more", staffActor)
	require.ErrorIs(t, err, ErrInvalidState)
	_, err = e.ReviewAsSuperadmin(task.ID, false, "undo", superadminActor)
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestUpdateTask_StatusRestrictions(t *testing.T) {
	e := newTestEngine(t)
	task := createTestTask(t, e)

	onHold := models.StatusOnHold
	task, err := e.UpdateTask(task.ID, TaskPatch{Status: &onHold}, staffActor)
	require.NoError(t, err)
	require.Equal(t, models.StatusOnHold, task.Status)

	completed := models.StatusCompleted
	_, err = e.UpdateTask(task.ID, TaskPatch{Status: &completed}, staffActor)
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateTask_PartialPatch(t *testing.T) {
	e := newTestEngine(t)
	task := createTestTask(t, e)

	title := "Design UI Mockups v2"
	task, err := e.UpdateTask(task.ID, TaskPatch{Title: &title}, adminActor)
	require.NoError(t, err)
	require.Equal(t, title, task.Title)
	require.Equal(t, "Create UI mockups for the new dashboard", task.Description)
}

func TestDeleteTask_RoleGate(t *testing.T) {
	e := newTestEngine(t)
	task := createTestTask(t, e)

	err := e.DeleteTask(task.ID, staffActor)
	require.ErrorIs(t, err, ErrPermissionDenied)

	require.NoError(t, e.DeleteTask(task.ID, adminActor))

	_, err = e.TaskByID(task.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPendingReviewQueries(t *testing.T) {
	e := newTestEngine(t)

	first := createTestTask(t, e)
	second := createTestTask(t, e)
	createTestTask(t, e)

	_, err := e.SubmitCompletion(first.ID, "done", staffActor)
	require.NoError(t, err)
	_, err = e.SubmitCompletion(second.ID, "done", staffActor)
	require.NoError(t, err)
	_, err = e.ReviewAsAdmin(second.ID, true, "", adminActor)
	require.NoError(t, err)

	pending, err := e.TasksPendingAdminReview()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, first.ID, pending[0].ID)

	finals, err := e.TasksPendingSuperadminApproval()
	require.NoError(t, err)
	require.Len(t, finals, 1)
	require.Equal(t, second.ID, finals[0].ID)

	assigned, err := e.TasksAssignedTo(staffActor.Email)
	require.NoError(t, err)
	require.Len(t, assigned, 3)
}

func TestListTasks_PaginationAndFilter(t *testing.T) {
	e := newTestEngine(t)
	for i := 0; i < 7; i++ {
		createTestTask(t, e)
	}
	_, err := e.CreateTask(CreateTaskInput{
		Title:       "Other person's task",
		Description: "d",
		DueDate:     "2027-03-01",
		AssignedTo:  "other@company.com",
	}, adminActor)
	require.NoError(t, err)

	tasks, total, err := e.ListTasks(ListOptions{Page: 1, Limit: 5})
	require.NoError(t, err)
	require.Equal(t, int64(8), total)
	require.Len(t, tasks, 5)

	tasks, total, err = e.ListTasks(ListOptions{Page: 2, Limit: 5})
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	tasks, total, err = e.ListTasks(ListOptions{AssignedTo: "other@company.com", Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, tasks, 1)
}

func TestStatsByAssignee(t *testing.T) {
	e := newTestEngine(t)
	first := createTestTask(t, e)
	createTestTask(t, e)

	_, err := e.SubmitCompletion(first.ID, "done", staffActor)
	require.NoError(t, err)

	stats, err := e.StatsByAssignee(staffActor.Email)
	require.NoError(t, err)
	require.Equal(t, int64(1), stats.Pending)
	require.Equal(t, int64(1), stats.Completed)
	require.Equal(t, int64(2), stats.Total)
}

func TestCreateMember_Provisioning(t *testing.T) {
	e := newTestEngine(t)

	provisioned, err := e.CreateMember(CreateMemberInput{
		Name:       "New Designer",
		Email:      "Designer@Company.com",
		Role:       "Graphic Designer",
		SystemRole: models.RoleStaff,
		IsDoer:     true,
	}, superadminActor)
	require.NoError(t, err)
	require.Len(t, provisioned.OTP, 6)
	require.True(t, len(provisioned.UserID) > 4 && provisioned.UserID[:4] == "STF-")
	require.Equal(t, "designer@company.com", provisioned.Member.Email)

	cred, err := e.FindCredential("designer@company.com", models.RoleStaff)
	require.NoError(t, err)
	require.True(t, e.VerifyOTP(cred, provisioned.OTP))
	require.False(t, e.VerifyOTP(cred, "000000"))

	// same email+role pair cannot be provisioned twice
	_, err = e.CreateMember(CreateMemberInput{
		Name:       "Dup",
		Email:      "designer@company.com",
		Role:       "Video Editor",
		SystemRole: models.RoleStaff,
	}, superadminActor)
	require.ErrorIs(t, err, ErrValidation)
}

func TestCreateMember_SuperadminOnly(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.CreateMember(CreateMemberInput{
		Name:       "New Designer",
		Email:      "designer@company.com",
		Role:       "Graphic Designer",
		SystemRole: models.RoleStaff,
	}, adminActor)
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestDeleteMember_DoesNotCascade(t *testing.T) {
	e := newTestEngine(t)
	db := e.db

	member, err := testutil.SeedMember(db, "member-1", "Sam Staff", staffActor.Email)
	require.NoError(t, err)
	task := createTestTask(t, e)

	require.NoError(t, e.DeleteMember(member.ID, superadminActor))

	// the member is gone but the task keeps its assignee reference
	_, err = e.MemberByEmail(staffActor.Email)
	require.ErrorIs(t, err, ErrNotFound)

	got, err := e.TaskByID(task.ID)
	require.NoError(t, err)
	require.Equal(t, staffActor.Email, got.AssignedTo)

	// and the orphaned assignee can still work the task
	_, err = e.SubmitCompletion(task.ID, "done", staffActor)
	require.NoError(t, err)
}

func TestProjects_CRUD(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.CreateProject(CreateProjectInput{Name: "Zaiden"}, staffActor)
	require.ErrorIs(t, err, ErrPermissionDenied)

	project, err := e.CreateProject(CreateProjectInput{
		Name:        "Zaiden",
		Description: "Zaiden project",
		Color:       "#3B82F6",
	}, adminActor)
	require.NoError(t, err)

	got, err := e.ProjectByID(project.ID)
	require.NoError(t, err)
	require.Equal(t, "Zaiden", got.Name)

	projects, err := e.Projects()
	require.NoError(t, err)
	require.Len(t, projects, 1)

	require.NoError(t, e.DeleteProject(project.ID, superadminActor))
	_, err = e.ProjectByID(project.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSeedSuperadmin_Once(t *testing.T) {
	e := newTestEngine(t)

	otp, err := e.SeedSuperadmin("System Administrator", "root@company.com")
	require.NoError(t, err)
	require.Len(t, otp, 6)

	cred, err := e.FindCredential("root@company.com", models.RoleSuperadmin)
	require.NoError(t, err)
	require.True(t, e.VerifyOTP(cred, otp))

	// second boot is a no-op
	otp, err = e.SeedSuperadmin("System Administrator", "root@company.com")
	require.NoError(t, err)
	require.Empty(t, otp)
}

func TestApprovalStatusDomain(t *testing.T) {
	e := newTestEngine(t)
	task := createTestTask(t, e)

	valid := map[models.ApprovalStatus]bool{
		models.ApprovalAssigned:           true,
		models.ApprovalInReview:           true,
		models.ApprovalAdminApproved:      true,
		models.ApprovalSuperadminApproved: true,
		models.ApprovalRejected:           true,
	}

	check := func() {
		got, err := e.TaskByID(task.ID)
		require.NoError(t, err)
		require.True(t, valid[got.ApprovalStatus], "unexpected stage %q", got.ApprovalStatus)
	}

	check()
	_, err := e.SubmitCompletion(task.ID, "done", staffActor)
	require.NoError(t, err)
	check()
	_, err = e.ReviewAsAdmin(task.ID, false, "redo", adminActor)
	require.NoError(t, err)
	check()
	_, err = e.SubmitCompletion(task.ID, "again", staffActor)
	require.NoError(t, err)
	check()
	_, err = e.ReviewAsAdmin(task.ID, true, "", adminActor)
	require.NoError(t, err)
	check()
	_, err = e.ReviewAsSuperadmin(task.ID, true, "", superadminActor)
	require.NoError(t, err)
	check()
}

func TestErrorsAreTagged(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.TaskByID("task-missing")
	require.True(t, errors.Is(err, ErrNotFound))
	require.False(t, errors.Is(err, ErrValidation))
}
