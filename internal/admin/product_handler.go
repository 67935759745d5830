package admin

import (
	"github.com/PanuLaosuwan/faststock-backend/internal/httpx"
	"github.com/PanuLaosuwan/faststock-backend/internal/ledger"
	"github.com/PanuLaosuwan/faststock-backend/internal/models"
	"github.com/PanuLaosuwan/faststock-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

var productFields = []string{"pname", "vol", "volunit", "category", "unit", "subunit", "factor", "desc"}

func readProduct(p httpx.Patch) (*models.Product, error) {
	var (
		prod models.Product
		err  error
		ok   [5]bool
	)
	if prod.Name, ok[0], err = p.String("pname"); err != nil {
		return nil, err
	}
	if prod.Category, ok[1], err = p.String("category"); err != nil {
		return nil, err
	}
	if prod.Unit, ok[2], err = p.String("unit"); err != nil {
		return nil, err
	}
	if prod.Subunit, ok[3], err = p.String("subunit"); err != nil {
		return nil, err
	}
	if prod.Factor, ok[4], err = p.Amount("factor"); err != nil {
		return nil, err
	}
	for _, present := range ok {
		if !present {
			return nil, ledger.InvalidInput("pname, category, unit, subunit and factor are required")
		}
	}
	if prod.Factor == 0 {
		return nil, ledger.InvalidInput("factor must be greater than zero")
	}
	if prod.Volume, _, err = p.NullableAmount("vol"); err != nil {
		return nil, err
	}
	if prod.VolumeUnit, _, err = p.NullableString("volunit"); err != nil {
		return nil, err
	}
	if prod.Description, _, err = p.NullableString("desc"); err != nil {
		return nil, err
	}
	return &prod, nil
}

// GET /api/products
func ListProductsHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		products, err := st.ListProducts(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(products)
	}
}

// GET /api/products/:id
func GetProductHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ID(c, "id")
		if err != nil {
			return err
		}
		prod, err := st.GetProduct(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(prod)
	}
}

// POST /api/products
func CreateProductHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := httpx.DecodePatch(c.Body(), productFields...)
		if err != nil {
			return err
		}
		prod, err := readProduct(p)
		if err != nil {
			return err
		}
		if err := st.CreateProduct(c.UserContext(), prod); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(prod)
	}
}

// PUT /api/products/:id
func ReplaceProductHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ID(c, "id")
		if err != nil {
			return err
		}
		p, err := httpx.DecodePatch(c.Body(), productFields...)
		if err != nil {
			return err
		}
		prod, err := readProduct(p)
		if err != nil {
			return err
		}
		updated, err := st.UpdateProduct(c.UserContext(), id, map[string]any{
			"pname":       prod.Name,
			"vol":         prod.Volume,
			"volunit":     prod.VolumeUnit,
			"category":    prod.Category,
			"unit":        prod.Unit,
			"subunit":     prod.Subunit,
			"factor":      prod.Factor,
			"description": prod.Description,
		})
		if err != nil {
			return err
		}
		return c.JSON(updated)
	}
}

// PATCH /api/products/:id
func PatchProductHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ID(c, "id")
		if err != nil {
			return err
		}
		p, err := httpx.DecodePatch(c.Body(), productFields...)
		if err != nil {
			return err
		}

		fields := map[string]any{}
		for _, col := range []string{"pname", "category", "unit", "subunit"} {
			if v, ok, err := p.String(col); err != nil {
				return err
			} else if ok {
				fields[col] = v
			}
		}
		if v, ok, err := p.Amount("factor"); err != nil {
			return err
		} else if ok {
			if v == 0 {
				return ledger.InvalidInput("factor must be greater than zero")
			}
			fields["factor"] = v
		}
		if v, ok, err := p.NullableAmount("vol"); err != nil {
			return err
		} else if ok {
			fields["vol"] = v
		}
		if v, ok, err := p.NullableString("volunit"); err != nil {
			return err
		} else if ok {
			fields["volunit"] = v
		}
		if v, ok, err := p.NullableString("desc"); err != nil {
			return err
		} else if ok {
			fields["description"] = v
		}
		if len(fields) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "No updatable fields in request body")
		}

		updated, err := st.UpdateProduct(c.UserContext(), id, fields)
		if err != nil {
			return err
		}
		return c.JSON(updated)
	}
}

// DELETE /api/products/:id fails while stock rows still reference the product.
func DeleteProductHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ID(c, "id")
		if err != nil {
			return err
		}
		if err := st.DeleteProduct(c.UserContext(), id); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
