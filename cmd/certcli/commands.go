package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var issueReq struct {
	UserName     string `json:"userName"`
	UserEmail    string `json:"userEmail"`
	ResourceName string `json:"resourceName"`
	Issuer       string `json:"issuer,omitempty"`
	AutoEmail    bool   `json:"autoEmail,omitempty"`
}

var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue a new certificate",
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := json.Marshal(issueReq)
		if err != nil {
			return err
		}
		return request(
			http.MethodPost, "/api/certificates/generate", bytes.NewReader(body), false,
		)
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify <hash>",
	Short: "Verify a certificate by its verification hash",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return request(
			http.MethodGet, "/api/certificates/verify/"+url.PathEscape(args[0]), nil, false,
		)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List issued certificates (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return request(http.MethodGet, "/api/certificates", nil, true)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <certificate-id>",
	Short: "Delete a certificate and its document (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return request(
			http.MethodDelete, "/api/certificates/"+url.PathEscape(args[0]), nil, true,
		)
	},
}

func init() {
	issueCmd.Flags().StringVar(&issueReq.UserName, "name", "", "the recipient's name")
	issueCmd.Flags().StringVar(&issueReq.UserEmail, "email", "", "the recipient's email address")
	issueCmd.Flags().StringVar(&issueReq.ResourceName, "resource", "", "the name of the completed resource")
	issueCmd.Flags().StringVar(&issueReq.Issuer, "issuer", "", "the issuing organization")
	issueCmd.Flags().BoolVar(&issueReq.AutoEmail, "auto-email", false, "mail the certificate to the recipient")
}

// request performs an api call and pretty-prints the JSON response.
func request(method, path string, body io.Reader, admin bool) error {
	req, err := http.NewRequest(method, serverURL+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		if adminToken == "" {
			return errors.New("an admin token is required, pass it with --token")
		}
		req.Header.Set("Authorization", "Bearer "+adminToken)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	var pretty bytes.Buffer
	if err = json.Indent(&pretty, data, "", "  "); err != nil {
		fmt.Println(string(data))
	} else {
		fmt.Println(pretty.String())
	}
	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusNotFound {
		return errors.Errorf("server returned status %d", resp.StatusCode)
	}
	return nil
}
