package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/docflow/internal/common"
	"github.com/dmitrijs2005/docflow/internal/dbx"
	"github.com/dmitrijs2005/docflow/internal/logging"
	"github.com/dmitrijs2005/docflow/internal/models"
	"github.com/dmitrijs2005/docflow/internal/repositories/repomanager"
	"github.com/dmitrijs2005/docflow/internal/repositories/roles"
)

// Registrar creates users through the confirmed registration flow.
type Registrar interface {
	Register(ctx context.Context, actor *models.Session, c models.Candidate, prompter CodePrompter) (*models.User, error)
}

// AdminService manages users and roles. Every operation except Bootstrap
// requires an admin session.
type AdminService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	registrar   Registrar
	history     ActionLogger
	logger      logging.Logger
}

func NewAdminService(db *sql.DB, rm repomanager.RepositoryManager, registrar Registrar, history ActionLogger, logger logging.Logger) *AdminService {
	return &AdminService{db: db, repomanager: rm, registrar: registrar, history: history, logger: logger}
}

func (s *AdminService) ListUsers(ctx context.Context, session *models.Session) ([]models.UserListItem, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}
	return s.repomanager.Users(s.db).List(ctx)
}

// CreateUser registers c with an explicit role, confirming the new user's
// email like a self-registration.
func (s *AdminService) CreateUser(ctx context.Context, session *models.Session, c models.Candidate, prompter CodePrompter) (*models.User, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}
	if c.RoleID == 0 {
		return nil, common.ErrRoleNotFound
	}
	return s.registrar.Register(ctx, session, c, prompter)
}

// ChangeRole assigns roleID to the user. It reports changed=false when the
// user already has that role.
func (s *AdminService) ChangeRole(ctx context.Context, session *models.Session, userID, roleID int64) (changed bool, err error) {
	if err := requireAdmin(session); err != nil {
		return false, err
	}

	users := s.repomanager.Users(s.db)
	user, err := users.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}

	role, err := s.repomanager.Roles(s.db).GetByID(ctx, roleID)
	if errors.Is(err, common.ErrorNotFound) {
		return false, common.ErrRoleNotFound
	}
	if err != nil {
		return false, err
	}

	if user.RoleID == role.ID {
		return false, nil
	}

	if err := users.UpdateRole(ctx, user.ID, role.ID); err != nil {
		return false, err
	}

	s.logger.Info(ctx, "user role changed", "user_id", user.ID, "role", role.Name)
	record(ctx, s.history, s.logger, session, models.ActionUpdate, user.Login, fmt.Sprintf("role changed to %s", role.Name), nil)
	return true, nil
}

// DeleteUsers hard-deletes users one by one and returns the ids that did
// not exist.
func (s *AdminService) DeleteUsers(ctx context.Context, session *models.Session, ids ...int64) (missing []int64, err error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}

	users := s.repomanager.Users(s.db)
	for _, id := range ids {
		err := users.Delete(ctx, id)
		if errors.Is(err, common.ErrorNotFound) {
			missing = append(missing, id)
			continue
		}
		if err != nil {
			return missing, err
		}
		s.logger.Info(ctx, "user deleted", "user_id", id)
		record(ctx, s.history, s.logger, session, models.ActionDelete, fmt.Sprintf("user %d", id), "user deleted", nil)
	}
	return missing, nil
}

func (s *AdminService) ListRoles(ctx context.Context, session *models.Session) ([]models.Role, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}
	return s.repomanager.Roles(s.db).List(ctx)
}

func (s *AdminService) CreateRole(ctx context.Context, session *models.Session, name, rights string) (*models.Role, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: role name is required", common.ErrValidation)
	}

	role, err := s.repomanager.Roles(s.db).Create(ctx, &models.Role{Name: name, AccessRights: rights})
	if err != nil {
		return nil, err
	}

	record(ctx, s.history, s.logger, session, models.ActionCreate, role.Name, "role created", nil)
	return role, nil
}

// UpdateRole saves the name and access rights of a role. The seeded roles
// keep their names.
func (s *AdminService) UpdateRole(ctx context.Context, session *models.Session, role models.Role) error {
	if err := requireAdmin(session); err != nil {
		return err
	}
	role.Name = strings.TrimSpace(role.Name)
	if role.Name == "" {
		return fmt.Errorf("%w: role name is required", common.ErrValidation)
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		roles := s.repomanager.Roles(tx)
		current, err := existingRole(ctx, roles, role.ID)
		if err != nil {
			return err
		}
		if models.IsBuiltinRole(current.Name) && current.Name != role.Name {
			return common.ErrBuiltinRole
		}
		err = roles.Update(ctx, &role)
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrRoleNotFound
		}
		return err
	})
	if err != nil {
		return err
	}

	record(ctx, s.history, s.logger, session, models.ActionUpdate, role.Name, "role updated", nil)
	return nil
}

// DeleteRole removes a role no user is assigned to. The seeded roles cannot
// be removed.
func (s *AdminService) DeleteRole(ctx context.Context, session *models.Session, id int64) error {
	if err := requireAdmin(session); err != nil {
		return err
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		roles := s.repomanager.Roles(tx)
		current, err := existingRole(ctx, roles, id)
		if err != nil {
			return err
		}
		if models.IsBuiltinRole(current.Name) {
			return common.ErrBuiltinRole
		}
		n, err := roles.CountUsers(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return common.ErrRoleInUse
		}
		err = roles.Delete(ctx, id)
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrRoleNotFound
		}
		return err
	})
	if err != nil {
		return err
	}

	record(ctx, s.history, s.logger, session, models.ActionDelete, fmt.Sprintf("role %d", id), "role deleted", nil)
	return nil
}

// Bootstrap gives login the admin role when no user has it yet. It reports
// whether a promotion happened.
func (s *AdminService) Bootstrap(ctx context.Context, login string) (bool, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return false, nil
	}

	promoted := false
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		admin, err := s.repomanager.Roles(tx).GetByName(ctx, models.RoleAdmin)
		if err != nil {
			return fmt.Errorf("failed to find admin role: %w", err)
		}
		n, err := s.repomanager.Roles(tx).CountUsers(ctx, admin.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		users := s.repomanager.Users(tx)
		user, err := users.FindByLogin(ctx, login)
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "bootstrap admin is not registered yet", "login", login)
			return nil
		}
		if err != nil {
			return err
		}
		if err := users.UpdateRole(ctx, user.ID, admin.ID); err != nil {
			return err
		}
		promoted = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if promoted {
		s.logger.Info(ctx, "bootstrap admin assigned", "login", login)
	}
	return promoted, nil
}

func existingRole(ctx context.Context, repo roles.Repository, id int64) (*models.Role, error) {
	role, err := repo.GetByID(ctx, id)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrRoleNotFound
	}
	return role, err
}
