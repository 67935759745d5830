package admin

import (
	"time"

	"github.com/PanuLaosuwan/faststock-backend/internal/auth"
	"github.com/PanuLaosuwan/faststock-backend/internal/httpx"
	"github.com/PanuLaosuwan/faststock-backend/internal/ledger"
	"github.com/PanuLaosuwan/faststock-backend/internal/models"
	"github.com/PanuLaosuwan/faststock-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

// UserResponse never carries the password hash.
type UserResponse struct {
	ID          uint    `json:"uid"`
	Username    string  `json:"username"`
	Name        string  `json:"uname"`
	Position    *string `json:"pos"`
	Description *string `json:"desc"`
	CreatedAt   string  `json:"created_at"`
}

var userFields = []string{"username", "password", "uname", "pos", "desc"}

const minPasswordLen = 6

func userResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Name:        u.Name,
		Position:    u.Position,
		Description: u.Description,
		CreatedAt:   u.CreatedAt.Format(time.DateTime),
	}
}

func hashPassword(p httpx.Patch) (string, bool, error) {
	if !p.Has("password") {
		return "", false, nil
	}
	pw, _, err := p.String("password")
	if err != nil {
		return "", true, err
	}
	if len(pw) < minPasswordLen {
		return "", true, ledger.InvalidInput("password must be at least %d characters", minPasswordLen)
	}
	hash, err := auth.HashPassword(pw)
	if err != nil {
		return "", true, err
	}
	return hash, true, nil
}

func readUser(p httpx.Patch) (*models.User, error) {
	username, okUsername, err := p.String("username")
	if err != nil {
		return nil, err
	}
	name, okName, err := p.String("uname")
	if err != nil {
		return nil, err
	}
	hash, okPassword, err := hashPassword(p)
	if err != nil {
		return nil, err
	}
	if !okUsername || !okName || !okPassword {
		return nil, ledger.InvalidInput("username, password and uname are required")
	}

	u := &models.User{Username: username, Name: name, PasswordHash: hash}
	if u.Position, _, err = p.NullableString("pos"); err != nil {
		return nil, err
	}
	if u.Description, _, err = p.NullableString("desc"); err != nil {
		return nil, err
	}
	return u, nil
}

// GET /api/user
func ListUsersHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := st.ListUsers(c.UserContext())
		if err != nil {
			return err
		}
		res := make([]UserResponse, 0, len(users))
		for i := range users {
			res = append(res, userResponse(&users[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/user/:id
func GetUserHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ID(c, "id")
		if err != nil {
			return err
		}
		u, err := st.GetUser(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(userResponse(u))
	}
}

// POST /api/user
func CreateUserHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := httpx.DecodePatch(c.Body(), userFields...)
		if err != nil {
			return err
		}
		u, err := readUser(p)
		if err != nil {
			return err
		}
		if err := st.CreateUser(c.UserContext(), u); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(userResponse(u))
	}
}

// PUT /api/user/:id
func ReplaceUserHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ID(c, "id")
		if err != nil {
			return err
		}
		p, err := httpx.DecodePatch(c.Body(), userFields...)
		if err != nil {
			return err
		}
		u, err := readUser(p)
		if err != nil {
			return err
		}
		updated, err := st.UpdateUser(c.UserContext(), id, map[string]any{
			"username":    u.Username,
			"password":    u.PasswordHash,
			"uname":       u.Name,
			"pos":         u.Position,
			"description": u.Description,
		})
		if err != nil {
			return err
		}
		return c.JSON(userResponse(updated))
	}
}

// PATCH /api/user/:id
func PatchUserHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ID(c, "id")
		if err != nil {
			return err
		}
		p, err := httpx.DecodePatch(c.Body(), userFields...)
		if err != nil {
			return err
		}

		fields := map[string]any{}
		for _, col := range []string{"username", "uname"} {
			if v, ok, err := p.String(col); err != nil {
				return err
			} else if ok {
				fields[col] = v
			}
		}
		if hash, ok, err := hashPassword(p); err != nil {
			return err
		} else if ok {
			fields["password"] = hash
		}
		if v, ok, err := p.NullableString("pos"); err != nil {
			return err
		} else if ok {
			fields["pos"] = v
		}
		if v, ok, err := p.NullableString("desc"); err != nil {
			return err
		} else if ok {
			fields["description"] = v
		}
		if len(fields) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "No updatable fields in request body")
		}

		updated, err := st.UpdateUser(c.UserContext(), id, fields)
		if err != nil {
			return err
		}
		return c.JSON(userResponse(updated))
	}
}

// DELETE /api/user/:id fails while the user still runs a bar.
func DeleteUserHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ID(c, "id")
		if err != nil {
			return err
		}
		if err := st.DeleteUser(c.UserContext(), id); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
