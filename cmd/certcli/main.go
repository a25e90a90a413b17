package main

import (
	"log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "certcli",
	Short: "certcli can help you manage your CertMint server",
	Long:  "certcli can help you manage your CertMint server",
}

var serverURL string
var adminToken string

func main() {
	rootCmd.PersistentFlags().StringVarP(
		&serverURL, "server", "s", "http://localhost:5000", "the base url of the certmint server",
	)
	rootCmd.PersistentFlags().StringVarP(
		&adminToken, "token", "t", "", "the admin api bearer token",
	)
	rootCmd.AddCommand(issueCmd, verifyCmd, listCmd, deleteCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
