package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	dtcfg "github.com/Dyslex7c/Decentralized-Twitter/internal/config"
	"github.com/Dyslex7c/Decentralized-Twitter/pkg/clients/siwe"
	"github.com/Dyslex7c/Decentralized-Twitter/pkg/identity"
	"github.com/Dyslex7c/Decentralized-Twitter/pkg/wallet"
)

func newLoginCmd() *cobra.Command {
	var googleToken bool
	var domain string
	var displayName string
	var avatarURL string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with your wallet key",
		Long: `Sign in by proving control of your account key.

The key signs a challenge issued by the identity backend; nothing but
the signature leaves this machine. Credentials are stored in
~/.dtwitter/.env and never appear in shell history.

Examples:
  dtwitter login           # Wallet signature sign-in
  dtwitter login --google  # Paste a Google ID token instead
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRuntime()
			if err != nil {
				return err
			}

			if err := saveProfile(r, displayName, avatarURL); err != nil {
				return err
			}

			if googleToken {
				return loginWithGoogle(cmd, r)
			}
			return loginWithWallet(cmd, r, domain)
		},
	}

	cmd.Flags().BoolVar(&googleToken, "google", false, "Sign in with a Google ID token instead of a wallet key")
	cmd.Flags().StringVar(&domain, "domain", "localhost", "Domain presented in the sign-in challenge")
	cmd.Flags().StringVar(&displayName, "display-name", "", "Display name shown on your posts")
	cmd.Flags().StringVar(&avatarURL, "avatar", "", "Avatar URL shown on your posts")

	return cmd
}

// saveProfile persists display name and avatar when given and loads
// them into the session either way.
func saveProfile(r *runtime, displayName, avatarURL string) error {
	if displayName != "" {
		if err := dtcfg.SaveEnvValue("DISPLAY_NAME", displayName); err != nil {
			return fmt.Errorf("failed to save display name: %w", err)
		}
	}
	if avatarURL != "" {
		if err := dtcfg.SaveEnvValue("AVATAR_URL", avatarURL); err != nil {
			return fmt.Errorf("failed to save avatar: %w", err)
		}
	}
	envMap, _ := dtcfg.LoadEnvFile()
	r.store.SetProfile(
		dtcfg.GetEnvValue("DISPLAY_NAME", envMap),
		dtcfg.GetEnvValue("AVATAR_URL", envMap),
	)
	return nil
}

func loginWithWallet(cmd *cobra.Command, r *runtime, domain string) error {
	out := cmd.OutOrStdout()

	signer := r.signer
	if signer == nil {
		keyHex, err := promptSecret(cmd, "Enter account private key (hex): ")
		if err != nil {
			return err
		}
		signer, err = wallet.NewSignerFromHex(keyHex)
		if err != nil {
			return err
		}
		if err := dtcfg.SaveEnvValue("ETH_PRIVATE_KEY", strings.TrimSpace(keyHex)); err != nil {
			return fmt.Errorf("failed to save key: %w", err)
		}
		r.signer = signer
	}

	address := signer.AddressHex()
	fmt.Fprintf(out, "Signing in as %s\n", address)

	challenge, err := r.auth.Message(cmd.Context(), siwe.MessageRequest{
		Address: address,
		Domain:  domain,
		URI:     "https://" + domain,
	})
	if err != nil {
		return err
	}

	signature, err := signer.SignPersonal(challenge.Message)
	if err != nil {
		return err
	}

	verdict, err := r.auth.Verify(cmd.Context(), siwe.VerifyRequest{
		Message:   challenge.Message,
		Signature: signature,
	})
	if err != nil {
		return err
	}
	if !verdict.Success {
		return fmt.Errorf("identity backend rejected the signature: %s", verdict.Error)
	}

	if verdict.Token != "" {
		if err := dtcfg.SaveEnvValue("AUTH_TOKEN", verdict.Token); err != nil {
			return fmt.Errorf("failed to save credentials: %w", err)
		}
		r.store.SetToken(verdict.Token)
	}
	r.store.SetAccount(address)

	handle, err := r.resolver.Resolve(address)
	switch {
	case errors.Is(err, identity.ErrHandleUnavailable):
		fmt.Fprintln(out, "Signed in; no handle available yet.")
	case err != nil:
		return err
	case handle == "":
		fmt.Fprintln(out, "Signed in; handle namespace not configured.")
	default:
		r.store.SetHandle(handle)
		fmt.Fprintf(out, "Signed in as %s (%s)\n", handle, address)
	}

	fmt.Fprintln(out, "Credentials saved to ~/.dtwitter/.env")
	return nil
}

func loginWithGoogle(cmd *cobra.Command, r *runtime) error {
	out := cmd.OutOrStdout()

	token, err := promptSecret(cmd, "Paste Google ID token: ")
	if err != nil {
		return err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("no token provided")
	}

	if err := dtcfg.SaveEnvValue("AUTH_TOKEN", token); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	r.store.SetToken(token)

	// Without a wallet there is no address to derive a handle from;
	// a previously persisted handle still applies.
	handle, err := r.resolver.Resolve("")
	if err == nil && handle != "" {
		r.store.SetHandle(handle)
		fmt.Fprintf(out, "Signed in as %s\n", handle)
	} else {
		fmt.Fprintln(out, "Signed in. Connect a wallet key to get a handle and post.")
	}

	fmt.Fprintln(out, "Credentials saved to ~/.dtwitter/.env")
	return nil
}

// promptSecret reads a line without echoing it, falling back to plain
// input when stdin is not a terminal.
func promptSecret(cmd *cobra.Command, prompt string) (string, error) {
	out := cmd.OutOrStdout()
	fmt.Fprint(out, prompt)
	secretBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out) // newline after hidden input
	if err != nil {
		reader := bufio.NewReader(cmd.InOrStdin())
		line, readErr := reader.ReadString('\n')
		if readErr != nil && line == "" {
			return "", fmt.Errorf("failed to read input: %w", readErr)
		}
		return strings.TrimSpace(line), nil
	}
	return strings.TrimSpace(string(secretBytes)), nil
}
