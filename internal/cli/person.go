package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hobbyist/internal/api"
	"github.com/mesh-intelligence/hobbyist/pkg/types"
)

func newPersonCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "person",
		Short: "Create, read, update and delete persons",
	}
	cmd.AddCommand(
		newPersonCreateCmd(a),
		newPersonGetCmd(a),
		newPersonListCmd(a),
		newPersonUpdateCmd(a),
		newPersonDeleteCmd(a),
	)
	return cmd
}

func personNotFound(id string) error {
	return fmt.Errorf("person %q: %w", id, types.ErrNotFound)
}

// showPerson renders one person, resolving its hobbies when populate is set.
func (a *app) showPerson(ctx context.Context, cmd *cobra.Command, svc *api.Service, p *types.Person, populate bool) error {
	view, err := svc.View(ctx, p, populate)
	if err != nil {
		return err
	}
	return a.renderPersons(cmd.OutOrStdout(), view, view)
}

func newPersonCreateCmd(a *app) *cobra.Command {
	var hobbies []string
	cmd := &cobra.Command{
		Use:     "create <name>",
		Short:   "Create a person",
		Example: `  hobbyist person create Ada --hobby 65f1c0e2a1b2c3d4e5f60718 --hobby 65f1c0e2a1b2c3d4e5f60719`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(cmd.Context(), func(ctx context.Context, svc *api.Service) error {
				p, err := svc.CreatePerson(ctx, api.CreatePersonInput{Name: args[0], Hobbies: hobbies})
				if err != nil {
					return err
				}
				return a.showPerson(ctx, cmd, svc, p, false)
			})
		},
	}
	cmd.Flags().StringArrayVar(&hobbies, "hobby", nil, "hobby id; repeat to build the ordered list")
	return cmd
}

func newPersonGetCmd(a *app) *cobra.Command {
	var populate bool
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Get a person by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(cmd.Context(), func(ctx context.Context, svc *api.Service) error {
				p, err := svc.Person(ctx, args[0])
				if err != nil {
					return err
				}
				if p == nil {
					return personNotFound(args[0])
				}
				return a.showPerson(ctx, cmd, svc, p, populate)
			})
		},
	}
	cmd.Flags().BoolVar(&populate, "populate", false, "resolve hobby ids into hobby records")
	return cmd
}

func newPersonListCmd(a *app) *cobra.Command {
	var populate bool
	cmd := &cobra.Command{
		Use:   "list [name=<v>] [_id=<v>] [hobbies=<json array>]",
		Short: "List persons matching exact-value filters",
		Long: "List persons. Each filter must match exactly; hobbies must equal the\n" +
			"stored list element by element, in order.",
		Example: `  hobbyist person list name=Ada
  hobbyist person list 'hobbies=["65f1c0e2a1b2c3d4e5f60718"]' --populate`,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := personFilter(args)
			if err != nil {
				return err
			}
			return a.withService(cmd.Context(), func(ctx context.Context, svc *api.Service) error {
				persons, err := svc.Persons(ctx, filter)
				if err != nil {
					return err
				}
				views, err := svc.Views(ctx, persons, populate)
				if err != nil {
					return err
				}
				return a.renderPersons(cmd.OutOrStdout(), views, views...)
			})
		},
	}
	cmd.Flags().BoolVar(&populate, "populate", false, "resolve hobby ids into hobby records")
	return cmd
}

var errHobbyFlags = errors.New("--hobby and --clear-hobbies are mutually exclusive")

func newPersonUpdateCmd(a *app) *cobra.Command {
	var (
		name         string
		hobbies      []string
		clearHobbies bool
	)
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the fields of a person given as flags",
		Long: "Update a person. --hobby replaces the whole hobbies list with the ids\n" +
			"given, in order; --clear-hobbies empties it.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := api.UpdatePersonInput{ID: args[0]}
			if cmd.Flags().Changed("name") {
				in.Name = &name
			}
			switch {
			case clearHobbies && cmd.Flags().Changed("hobby"):
				return errHobbyFlags
			case clearHobbies:
				in.Hobbies = &[]string{}
			case cmd.Flags().Changed("hobby"):
				in.Hobbies = &hobbies
			}
			return a.withService(cmd.Context(), func(ctx context.Context, svc *api.Service) error {
				p, err := svc.UpdatePerson(ctx, in)
				if err != nil {
					return err
				}
				if p == nil {
					return personNotFound(args[0])
				}
				return a.showPerson(ctx, cmd, svc, p, false)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringArrayVar(&hobbies, "hobby", nil, "hobby id; repeat to build the new ordered list")
	cmd.Flags().BoolVar(&clearHobbies, "clear-hobbies", false, "remove every hobby reference")
	return cmd
}

func newPersonDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a person",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(cmd.Context(), func(ctx context.Context, svc *api.Service) error {
				p, err := svc.DeletePerson(ctx, args[0])
				if err != nil {
					return err
				}
				if p == nil {
					return personNotFound(args[0])
				}
				return a.showPerson(ctx, cmd, svc, p, false)
			})
		},
	}
}
