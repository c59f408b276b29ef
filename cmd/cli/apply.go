package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"konverge/internal/bundle"
	"konverge/internal/cluster"
	"konverge/internal/reconcile"
)

var (
	applyFile        string
	applyBundle      string
	applyNamespace   string
	applyServer      string
	applyToken       string
	applyArtifactDir string
	applyBaseDir     string
	applyDryRun      bool

	applyStopOnError     bool
	applyAllowCreate     bool
	applyRecreate        bool
	applyServicesOnly    bool
	applyIgnoreServices  bool
	applyOAuthClients    bool
	applyReplaceOAuth    bool
	applyLocalTemplates  bool
	applyStrictParams    bool
	applyKeepPods        bool
	applyDefaultNS       string
)

// applyCmd represents the apply command
var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Converge the cluster toward a manifest file or bundle",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runApply(cmd.Context()); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func runApply(ctx context.Context) error {
	if (applyFile == "") == (applyBundle == "") {
		return fmt.Errorf("exactly one of --file and --bundle must be given")
	}

	var client cluster.Client
	if applyDryRun {
		client = cluster.NewMock()
	} else {
		if applyServer == "" {
			return fmt.Errorf("--server is required unless --dry-run is set")
		}
		client = cluster.NewHTTPClient(applyServer, applyToken)
	}

	engine, err := reconcile.New(reconcile.Config{
		Client:      client,
		Policy:      applyPolicy(),
		ArtifactDir: applyArtifactDir,
		BaseDir:     applyBaseDir,
	})
	if err != nil {
		return err
	}

	opts := reconcile.ApplyOptions{Namespace: applyNamespace}

	var result *reconcile.Result
	if applyFile != "" {
		result, err = engine.ApplyFile(ctx, applyFile, opts)
	} else {
		var b *bundle.Bundle
		b, err = bundle.Load(applyBundle)
		if err != nil {
			return err
		}
		opts.Source = b.Meta.Name
		result, err = engine.Apply(ctx, b.Resources, opts)
	}

	if result != nil {
		displayResult(result, applyDryRun)
	}
	if err != nil {
		return fmt.Errorf("apply failed: %w", err)
	}
	if result != nil {
		return result.Err()
	}
	return nil
}

func applyPolicy() reconcile.Policy {
	return reconcile.Policy{
		StopOnError:                  applyStopOnError,
		AllowCreate:                  applyAllowCreate,
		Recreate:                     applyRecreate,
		ServicesOnly:                 applyServicesOnly,
		IgnoreServices:               applyIgnoreServices,
		SupportOAuthClients:          applyOAuthClients,
		IgnoreRunningOAuthClients:    !applyReplaceOAuth,
		ProcessTemplatesLocally:      applyLocalTemplates,
		FailOnMissingParameter:       applyStrictParams,
		DeletePodsOnScaleGroupUpdate: !applyKeepPods,
		DefaultNamespace:             applyDefaultNS,
	}
}

func init() {
	applyCmd.Flags().StringVarP(&applyFile, "file", "f", "", "Manifest file to apply (.json, .yaml)")
	applyCmd.Flags().StringVarP(&applyBundle, "bundle", "b", "", "Bundle directory to render and apply")
	applyCmd.Flags().StringVarP(&applyNamespace, "namespace", "n", "", "Namespace to apply every namespaced resource into")
	applyCmd.Flags().StringVar(&applyServer, "server", "", "Cluster API base URL")
	applyCmd.Flags().StringVar(&applyToken, "token", "", "Bearer token for the cluster API")
	applyCmd.Flags().StringVar(&applyArtifactDir, "artifact-dir", "", "Directory to persist applied manifests into")
	applyCmd.Flags().StringVar(&applyBaseDir, "base-dir", "", "Base directory artifact paths are displayed relative to")
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Apply against an in-memory cluster instead of a server")

	applyCmd.Flags().BoolVar(&applyStopOnError, "stop-on-error", true, "Abort the batch at the first failed cluster operation")
	applyCmd.Flags().BoolVar(&applyAllowCreate, "create", true, "Create resources that are absent from the cluster")
	applyCmd.Flags().BoolVar(&applyRecreate, "recreate", false, "Delete and recreate changed resources instead of updating")
	applyCmd.Flags().BoolVar(&applyServicesOnly, "services-only", false, "Process only Service resources")
	applyCmd.Flags().BoolVar(&applyIgnoreServices, "ignore-services", false, "Skip Service resources entirely")
	applyCmd.Flags().BoolVar(&applyOAuthClients, "oauth-clients", false, "Enable OAuthClient reconciliation")
	applyCmd.Flags().BoolVar(&applyReplaceOAuth, "replace-oauth-clients", false, "Reconfigure existing OAuth clients instead of leaving them untouched")
	applyCmd.Flags().BoolVar(&applyLocalTemplates, "local-templates", false, "Expand templates locally without any cluster call")
	applyCmd.Flags().BoolVar(&applyStrictParams, "strict-parameters", false, "Fail template expansion on missing parameter values")
	applyCmd.Flags().BoolVar(&applyKeepPods, "keep-pods", false, "Do not respawn a scale group's pods after an update")
	applyCmd.Flags().StringVar(&applyDefaultNS, "default-namespace", "default", "Namespace used when neither the request nor the resource names one")

	rootCmd.AddCommand(applyCmd)
}
