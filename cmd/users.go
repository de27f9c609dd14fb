package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mdrahmanz/curator/identity"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage studio users",
	Long: `Manage the accounts that can sign in to the studio.

Examples:
  curator users list
  curator users add admin@example.com --password s3cretpass --role admin
  curator users role 4f1c... editor
  curator users disable 4f1c...
  curator users reset admin@example.com`,
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		_, pool, err := openDatabase(ctx)
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}

		users, err := identity.NewUsers(pool).List(ctx)
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
		if len(users) == 0 {
			fmt.Println("📭 No users yet")
			return
		}

		red := color.New(color.FgRed)
		for _, u := range users {
			fmt.Printf("%s  %s  [%s]", u.ID, u.Email, u.Role)
			if u.Disabled {
				red.Print("  disabled")
			}
			fmt.Println()
		}
	},
}

var usersAddCmd = &cobra.Command{
	Use:   "add <email>",
	Short: "Create a user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if userPassword == "" {
			fmt.Println("❌ --password is required")
			os.Exit(1)
		}
		ctx := context.Background()
		_, pool, err := openDatabase(ctx)
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}

		user, err := identity.NewUsers(pool).Create(ctx, args[0], userPassword, userRole)
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
		fmt.Printf("✅ Created %s (%s)\n", user.Email, user.ID)
	},
}

var usersRoleCmd = &cobra.Command{
	Use:   "role <id> <role>",
	Short: "Change a user's role",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		_, pool, err := openDatabase(ctx)
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
		if err := identity.NewUsers(pool).SetRole(ctx, args[0], args[1]); err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
		fmt.Printf("✅ Role set to %s\n", args[1])
	},
}

var usersDisableCmd = &cobra.Command{
	Use:   "disable <id>",
	Short: "Disable a user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setDisabled(args[0], true)
	},
}

var usersEnableCmd = &cobra.Command{
	Use:   "enable <id>",
	Short: "Re-enable a user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setDisabled(args[0], false)
	},
}

func setDisabled(id string, disabled bool) {
	ctx := context.Background()
	_, pool, err := openDatabase(ctx)
	if err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
	if err := identity.NewUsers(pool).SetDisabled(ctx, id, disabled); err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
	if disabled {
		fmt.Println("✅ User disabled")
	} else {
		fmt.Println("✅ User enabled")
	}
}

var usersResetCmd = &cobra.Command{
	Use:   "reset <email>",
	Short: "Start a password reset",
	Long: `Start a password reset for the account. The printed token is consumed
with 'curator users set-password <token> --password ...'.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		_, pool, err := openDatabase(ctx)
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
		token, err := identity.NewUsers(pool).StartPasswordReset(ctx, args[0])
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
		fmt.Printf("🔑 Reset token (valid 1h): %s\n", token)
	},
}

var usersSetPasswordCmd = &cobra.Command{
	Use:   "set-password <token>",
	Short: "Complete a password reset",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if userPassword == "" {
			fmt.Println("❌ --password is required")
			os.Exit(1)
		}
		ctx := context.Background()
		_, pool, err := openDatabase(ctx)
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
		if err := identity.NewUsers(pool).ResetPassword(ctx, args[0], userPassword); err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
		fmt.Println("✅ Password updated")
	},
}

var (
	userPassword string
	userRole     string
)

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersAddCmd)
	usersCmd.AddCommand(usersRoleCmd)
	usersCmd.AddCommand(usersDisableCmd)
	usersCmd.AddCommand(usersEnableCmd)
	usersCmd.AddCommand(usersResetCmd)
	usersCmd.AddCommand(usersSetPasswordCmd)

	usersAddCmd.Flags().StringVar(&userPassword, "password", "", "Password for the account")
	usersAddCmd.Flags().StringVar(&userRole, "role", "editor", "Role claim (editor or admin)")
	usersSetPasswordCmd.Flags().StringVar(&userPassword, "password", "", "New password")
}
