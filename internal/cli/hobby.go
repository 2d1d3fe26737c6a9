package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hobbyist/internal/api"
	"github.com/mesh-intelligence/hobbyist/pkg/types"
)

func newHobbyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hobby",
		Short: "Create, read, update and delete hobbies",
	}
	cmd.AddCommand(
		newHobbyCreateCmd(a),
		newHobbyGetCmd(a),
		newHobbyListCmd(a),
		newHobbyUpdateCmd(a),
		newHobbyDeleteCmd(a),
	)
	return cmd
}

func hobbyNotFound(id string) error {
	return fmt.Errorf("hobby %q: %w", id, types.ErrNotFound)
}

func newHobbyCreateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a hobby",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(cmd.Context(), func(ctx context.Context, svc *api.Service) error {
				h, err := svc.CreateHobby(ctx, api.CreateHobbyInput{Name: args[0]})
				if err != nil {
					return err
				}
				return a.renderHobbies(cmd.OutOrStdout(), h, h)
			})
		},
	}
}

func newHobbyGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a hobby by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(cmd.Context(), func(ctx context.Context, svc *api.Service) error {
				h, err := svc.Hobby(ctx, args[0])
				if err != nil {
					return err
				}
				if h == nil {
					return hobbyNotFound(args[0])
				}
				return a.renderHobbies(cmd.OutOrStdout(), h, h)
			})
		},
	}
}

func newHobbyListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list [name=<v>] [_id=<v>]",
		Short: "List hobbies matching exact-value filters",
		Example: `  hobbyist hobby list
  hobbyist hobby list name=chess`,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := hobbyFilter(args)
			if err != nil {
				return err
			}
			return a.withService(cmd.Context(), func(ctx context.Context, svc *api.Service) error {
				hobbies, err := svc.Hobbies(ctx, filter)
				if err != nil {
					return err
				}
				return a.renderHobbies(cmd.OutOrStdout(), hobbies, hobbies...)
			})
		},
	}
}

func newHobbyUpdateCmd(a *app) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the fields of a hobby given as flags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := api.UpdateHobbyInput{ID: args[0]}
			if cmd.Flags().Changed("name") {
				in.Name = &name
			}
			return a.withService(cmd.Context(), func(ctx context.Context, svc *api.Service) error {
				h, err := svc.UpdateHobby(ctx, in)
				if err != nil {
					return err
				}
				if h == nil {
					return hobbyNotFound(args[0])
				}
				return a.renderHobbies(cmd.OutOrStdout(), h, h)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	return cmd
}

func newHobbyDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a hobby; persons referencing it keep the id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(cmd.Context(), func(ctx context.Context, svc *api.Service) error {
				h, err := svc.DeleteHobby(ctx, args[0])
				if err != nil {
					return err
				}
				if h == nil {
					return hobbyNotFound(args[0])
				}
				return a.renderHobbies(cmd.OutOrStdout(), h, h)
			})
		},
	}
}
