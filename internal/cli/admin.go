package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/docflow/internal/common"
	"github.com/dmitrijs2005/docflow/internal/models"
)

func (a *App) Users(ctx context.Context) error {
	s, err := a.session()
	if err != nil {
		return err
	}

	users, err := a.svc.Admin.ListUsers(ctx, s)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tLOGIN\tEMAIL\tPHONE\tROLE")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", u.ID, u.DisplayName(), u.Login, u.Email, u.Phone, u.RoleName)
	}
	return w.Flush()
}

// AddUser registers a user with a chosen role. The new user's email is
// confirmed the same way as on self-registration.
func (a *App) AddUser(ctx context.Context) error {
	s, err := a.session()
	if err != nil {
		return err
	}

	if err := a.Roles(ctx); err != nil {
		return err
	}
	roleID, err := a.askID("Role id")
	if err != nil {
		return err
	}

	c, err := a.readCandidate()
	if err != nil {
		return err
	}
	c.RoleID = roleID

	u, err := a.svc.Admin.CreateUser(ctx, s, c, codePrompter{a: a})
	if err != nil {
		return err
	}

	a.printf("User %s created with id %d\n", u.Login, u.ID)
	return nil
}

func (a *App) SetRole(ctx context.Context) error {
	s, err := a.session()
	if err != nil {
		return err
	}

	userID, err := a.askID("User id")
	if err != nil {
		return err
	}
	roleID, err := a.askID("New role id")
	if err != nil {
		return err
	}

	changed, err := a.svc.Admin.ChangeRole(ctx, s, userID, roleID)
	if err != nil {
		return err
	}

	if changed {
		a.println("Role changed")
	} else {
		a.println("User already has this role")
	}
	return nil
}

// DelUser deletes the users listed as space separated ids.
func (a *App) DelUser(ctx context.Context) error {
	s, err := a.session()
	if err != nil {
		return err
	}

	line, err := a.ask("User ids separated by spaces")
	if err != nil {
		return err
	}
	ids, err := parseIDs(line)
	if err != nil {
		return err
	}

	ok, err := confirm(a.reader, fmt.Sprintf("Delete %d user(s)?", len(ids)), a.out)
	if err != nil || !ok {
		return err
	}

	missing, err := a.svc.Admin.DeleteUsers(ctx, s, ids...)
	if err != nil {
		return err
	}

	a.printf("Deleted %d user(s)\n", len(ids)-len(missing))
	if len(missing) > 0 {
		a.printf("Not found: %s\n", joinIDs(missing))
	}
	return nil
}

func (a *App) Roles(ctx context.Context) error {
	s, err := a.session()
	if err != nil {
		return err
	}

	roles, err := a.svc.Admin.ListRoles(ctx, s)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tACCESS RIGHTS")
	for _, r := range roles {
		fmt.Fprintf(w, "%d\t%s\t%s\n", r.ID, r.Name, r.AccessRights)
	}
	return w.Flush()
}

func (a *App) AddRole(ctx context.Context) error {
	s, err := a.session()
	if err != nil {
		return err
	}

	name, err := a.ask("Role name")
	if err != nil {
		return err
	}
	rights, err := a.ask("Access rights")
	if err != nil {
		return err
	}

	role, err := a.svc.Admin.CreateRole(ctx, s, name, rights)
	if err != nil {
		return err
	}

	a.printf("Role %s created with id %d\n", role.Name, role.ID)
	return nil
}

// EditRole renames a role or changes its access rights. Empty answers keep
// the current values.
func (a *App) EditRole(ctx context.Context) error {
	s, err := a.session()
	if err != nil {
		return err
	}

	id, err := a.askID("Role id")
	if err != nil {
		return err
	}

	roles, err := a.svc.Admin.ListRoles(ctx, s)
	if err != nil {
		return err
	}
	var role *models.Role
	for i := range roles {
		if roles[i].ID == id {
			role = &roles[i]
		}
	}
	if role == nil {
		return common.ErrRoleNotFound
	}

	name, err := a.ask(fmt.Sprintf("Name [%s]", role.Name))
	if err != nil {
		return err
	}
	if name != "" {
		role.Name = name
	}
	rights, err := a.ask(fmt.Sprintf("Access rights [%s]", role.AccessRights))
	if err != nil {
		return err
	}
	if rights != "" {
		role.AccessRights = rights
	}

	if err := a.svc.Admin.UpdateRole(ctx, s, *role); err != nil {
		return err
	}

	a.println("Role updated")
	return nil
}

func (a *App) DelRole(ctx context.Context) error {
	s, err := a.session()
	if err != nil {
		return err
	}

	id, err := a.askID("Role id")
	if err != nil {
		return err
	}

	if err := a.svc.Admin.DeleteRole(ctx, s, id); err != nil {
		return err
	}

	a.println("Role deleted")
	return nil
}

func (a *App) History(ctx context.Context) error {
	s, err := a.session()
	if err != nil {
		return err
	}

	actions, err := a.svc.History.List(ctx, s)
	if err != nil {
		return err
	}
	if len(actions) == 0 {
		a.println("History is empty")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tUSER\tACTION\tOBJECT\tDOCUMENT\tDESCRIPTION")
	for _, act := range actions {
		doc := ""
		if act.DocumentID != nil {
			doc = strconv.FormatInt(*act.DocumentID, 10)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			act.CreatedAt.Local().Format("2006-01-02 15:04:05"), act.Actor, act.Type, act.Object, doc, act.Description)
	}
	return w.Flush()
}

func (a *App) ClearHistory(ctx context.Context) error {
	s, err := a.session()
	if err != nil {
		return err
	}

	ok, err := confirm(a.reader, "Clear the whole action history?", a.out)
	if err != nil || !ok {
		return err
	}

	n, err := a.svc.History.Clear(ctx, s)
	if err != nil {
		return err
	}

	a.printf("Removed %d entries\n", n)
	return nil
}

func parseIDs(line string) ([]int64, error) {
	fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no ids given", common.ErrValidation)
	}

	ids := make([]int64, 0, len(fields))
	for _, f := range fields {
		id, err := strconv.ParseInt(f, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%w: %q is not an id", common.ErrValidation, f)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ", ")
}
