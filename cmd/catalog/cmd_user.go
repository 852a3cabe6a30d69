package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/pkg/app"
	"github.com/shashiranjanraj/catalog/pkg/auth"
	"github.com/shashiranjanraj/catalog/pkg/validate"
)

type userInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// catalog user:create --email --password
func newUserCreateCmd() *cobra.Command {
	var in userInput

	cmd := &cobra.Command{
		Use:   "user:create",
		Short: "Create a user that can log in at POST /auth/token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in.Email = strings.TrimSpace(in.Email)
			if errs := validate.Struct(&in); validate.HasErrors(errs) {
				msgs := make([]string, 0, len(errs))
				for _, msg := range errs {
					msgs = append(msgs, msg)
				}
				sort.Strings(msgs)
				return errors.New(strings.Join(msgs, " "))
			}

			hash, err := auth.HashPassword(in.Password)
			if err != nil {
				return err
			}

			return withDB(cmd, func(a *app.Application) error {
				user := models.User{Email: in.Email, Password: hash}
				if err := repositories.NewUserRepository(a.DB).Create(cmd.Context(), &user); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created user #%d <%s>\n", user.ID, user.Email)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "login email")
	cmd.Flags().StringVar(&in.Password, "password", "", "plain-text password, at least 8 characters")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
