package auth

import (
	"github.com/yigit/alumniconnect/internal/app/models"
	"github.com/yigit/alumniconnect/internal/pkg/apperrors"
)

// ResourceKind names a protected resource type
type ResourceKind string

const (
	ResourceJob         ResourceKind = "job"
	ResourceApplication ResourceKind = "application"
	ResourceEvent       ResourceKind = "event"
	ResourceDonation    ResourceKind = "donation"
	ResourceMentorship  ResourceKind = "mentorship"
	ResourceUser        ResourceKind = "user"
)

// Action names an operation on a resource
type Action string

const (
	ActionCreate       Action = "create"
	ActionUpdate       Action = "update"
	ActionDelete       Action = "delete"
	ActionUpdateStatus Action = "update_status"
	ActionListByParent Action = "list_by_parent"
	ActionStats        Action = "stats"
	ActionAdminister   Action = "administer"
)

// Resource is the target of an authorization decision. OwnerID is the user
// whose ownership grants access: the poster of a job (also for its
// applications) or the mentor a request is addressed to.
type Resource struct {
	Kind    ResourceKind
	OwnerID int64
}

// MsgApprovalPending is returned to alumni whose account has not been approved
const MsgApprovalPending = "Alumni approval pending"

// MsgAdminOnly is returned when a non-admin attempts an admin action
const MsgAdminOnly = "Admin only"

type rule struct {
	allow  func(c Caller, r Resource) bool
	denial string
}

func anyone(Caller, Resource) bool { return true }

func adminOnly(c Caller, _ Resource) bool { return c.IsAdmin() }

func studentOnly(c Caller, _ Resource) bool { return c.Role == models.RoleStudent }

func ownerOrAdmin(c Caller, r Resource) bool {
	return c.IsAdmin() || (r.OwnerID != 0 && c.ID == r.OwnerID)
}

// policy is the write column of the access table. Pairs missing here are denied.
var policy = map[ResourceKind]map[Action]rule{
	ResourceJob: {
		ActionCreate: {anyone, ""},
		ActionUpdate: {ownerOrAdmin, "Not your job"},
		ActionDelete: {ownerOrAdmin, "Not your job"},
	},
	ResourceApplication: {
		ActionCreate:       {studentOnly, "Only students can apply"},
		ActionUpdateStatus: {ownerOrAdmin, "Not authorized"},
		ActionListByParent: {ownerOrAdmin, "Not your job"},
	},
	ResourceEvent: {
		ActionCreate: {anyone, ""},
		ActionUpdate: {adminOnly, MsgAdminOnly},
		ActionDelete: {adminOnly, MsgAdminOnly},
	},
	ResourceDonation: {
		ActionCreate: {anyone, ""},
		ActionStats:  {adminOnly, MsgAdminOnly},
	},
	ResourceMentorship: {
		ActionCreate:       {studentOnly, "Only students can request mentorship"},
		ActionUpdateStatus: {ownerOrAdmin, "Not your request"},
	},
	ResourceUser: {
		ActionAdminister: {adminOnly, MsgAdminOnly},
	},
}

// ListScope restricts which rows a caller may read. All wins over the id
// filters; a zero id filter is unused, and a scope with neither matches nothing.
type ListScope struct {
	All        bool
	StudentID  int64
	MentorID   int64
	DonorID    int64
	JobOwnerID int64
}

// AuthorizationService is the single policy point for approval gating,
// mutations and list visibility
type AuthorizationService struct{}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService() *AuthorizationService {
	return &AuthorizationService{}
}

// CheckApproval rejects alumni that an admin has not approved yet
func (s *AuthorizationService) CheckApproval(c Caller) error {
	if c.Role == models.RoleAlumni && !c.Approved {
		return apperrors.NewForbiddenError(MsgApprovalPending)
	}
	return nil
}

// Authorize decides whether caller may perform action on res. The resource
// must already be known to exist.
func (s *AuthorizationService) Authorize(c Caller, action Action, res Resource) error {
	if c.ID == 0 {
		return apperrors.NewUnauthenticatedError("Authentication required")
	}
	if err := s.CheckApproval(c); err != nil {
		return err
	}

	r, ok := policy[res.Kind][action]
	if !ok {
		return apperrors.NewForbiddenError("Not authorized")
	}
	if !r.allow(c, res) {
		return apperrors.NewForbiddenError(r.denial)
	}
	return nil
}

// Scope returns the rows of kind the caller may list
func (s *AuthorizationService) Scope(c Caller, kind ResourceKind) ListScope {
	if c.IsAdmin() {
		return ListScope{All: true}
	}

	switch kind {
	case ResourceApplication:
		if c.Role == models.RoleStudent {
			return ListScope{StudentID: c.ID}
		}
		return ListScope{JobOwnerID: c.ID}
	case ResourceDonation:
		return ListScope{DonorID: c.ID}
	case ResourceMentorship:
		if c.Role == models.RoleAlumni {
			return ListScope{MentorID: c.ID}
		}
		return ListScope{StudentID: c.ID}
	case ResourceJob, ResourceEvent:
		return ListScope{All: true}
	}
	return ListScope{}
}

// Empty reports whether the scope matches no rows
func (l ListScope) Empty() bool {
	return !l.All && l.StudentID == 0 && l.MentorID == 0 && l.DonorID == 0 && l.JobOwnerID == 0
}

// ShowDonor reports whether the donor name of d may be rendered
func (s *AuthorizationService) ShowDonor(_ Caller, d *models.Donation) bool {
	return !d.IsAnonymous
}
