package handler

import (
	"context"
	"fmt"

	"github.com/Eursukkul/hotel-reservation/internal/models"
)

func (h *CLIHandler) customer(ctx context.Context, args []string) error {
	act, rest, err := action("customer", args)
	if err != nil {
		return err
	}

	fs := h.newFlagSet("customer " + act)
	name := fs.String("name", "", "customer name")
	switch act {
	case "create":
		email := fs.String("email", "", "email address")
		phone := fs.String("phone", "", "mobile phone")
		address := fs.String("address", "", "postal address")
		if err := parse(fs, rest); err != nil {
			return err
		}
		c := &models.Customer{Name: *name, Email: *email, MobilePhone: *phone, Address: *address}
		if err := h.customers.CreateCustomer(ctx, c); err != nil {
			return err
		}
		fmt.Fprintf(h.out, "Customer %s created\n", c.Name)
		return nil

	case "show":
		if err := parse(fs, rest); err != nil {
			return err
		}
		if err := required(map[string]string{"name": *name}, "name"); err != nil {
			return err
		}
		return h.customers.DisplayCustomer(ctx, h.out, *name)

	case "modify":
		newName := fs.String("new-name", "", "rename the customer")
		email := fs.String("email", "", "email address")
		phone := fs.String("phone", "", "mobile phone")
		address := fs.String("address", "", "postal address")
		if err := parse(fs, rest); err != nil {
			return err
		}
		if err := required(map[string]string{"name": *name}, "name"); err != nil {
			return err
		}
		update := models.Customer{Name: *newName, Email: *email, MobilePhone: *phone, Address: *address}
		if update.Name == "" {
			update.Name = *name
		}
		c, err := h.customers.ModifyCustomer(ctx, *name, update)
		if err != nil {
			return err
		}
		fmt.Fprintf(h.out, "Customer %s modified\n", c.Name)
		return nil

	case "delete":
		if err := parse(fs, rest); err != nil {
			return err
		}
		if err := required(map[string]string{"name": *name}, "name"); err != nil {
			return err
		}
		if err := h.customers.DeleteCustomer(ctx, *name); err != nil {
			return err
		}
		fmt.Fprintf(h.out, "Customer %s deleted\n", *name)
		return nil
	}
	return unknownAction("customer", act)
}
