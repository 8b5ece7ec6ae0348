package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"go-nutriscan/internal/auth"
)

var registerCmd = &cobra.Command{
	Use:   "register <email> <password>",
	Short: "Register local credentials",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := auth.NewStore(globalConfig.Auth.CredentialsFile)
		if err := store.Register(args[0], args[1]); err != nil {
			return err
		}
		fmt.Println("Registration successful.")
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <email> <password>",
	Short: "Check credentials against the local store",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := auth.NewStore(globalConfig.Auth.CredentialsFile)
		ok, err := store.Login(args[0], args[1])
		if err != nil {
			if errors.Is(err, auth.ErrNoAccount) {
				return errors.New("no account registered yet, run `nutriscan register` first")
			}
			return err
		}
		if !ok {
			return errors.New("invalid credentials")
		}
		fmt.Println("Login successful.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
}
