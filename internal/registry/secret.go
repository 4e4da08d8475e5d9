package registry

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	ctrl "sigs.k8s.io/controller-runtime"
)

// SecretConfig points at a Kubernetes Secret holding repository credentials.
type SecretConfig struct {
	Namespace   string
	Name        string
	UsernameKey string
	PasswordKey string
}

// SecretCredentials reads credentials from a Kubernetes Secret. Useful when the
// publish step runs as an in-cluster CI job.
type SecretCredentials struct {
	cfg    SecretConfig
	client kubernetes.Interface
}

// NewSecretCredentials builds a source backed by client. When client is nil a
// clientset is created from the ambient kubeconfig or in-cluster config.
func NewSecretCredentials(cfg SecretConfig, client kubernetes.Interface) (*SecretCredentials, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("secret name is required")
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "default"
	}
	if cfg.UsernameKey == "" {
		cfg.UsernameKey = "username"
	}
	if cfg.PasswordKey == "" {
		cfg.PasswordKey = "password"
	}
	if client == nil {
		restCfg, err := ctrl.GetConfig()
		if err != nil {
			return nil, fmt.Errorf("load kubernetes config: %w", err)
		}
		cs, err := kubernetes.NewForConfig(restCfg)
		if err != nil {
			return nil, fmt.Errorf("create kubernetes client: %w", err)
		}
		client = cs
	}
	return &SecretCredentials{cfg: cfg, client: client}, nil
}

func (s *SecretCredentials) BasicAuth(ctx context.Context) (string, string, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("secret", s.cfg.Namespace+"/"+s.cfg.Name)

	secret, err := s.client.CoreV1().Secrets(s.cfg.Namespace).Get(ctx, s.cfg.Name, metav1.GetOptions{})
	if err != nil {
		log.Error(err, "failed to read credentials secret")
		return "", "", fmt.Errorf("get secret %s/%s: %w", s.cfg.Namespace, s.cfg.Name, err)
	}
	user := string(secret.Data[s.cfg.UsernameKey])
	pass := string(secret.Data[s.cfg.PasswordKey])
	if user == "" {
		log.Info("secret has no username", "key", s.cfg.UsernameKey)
	}
	if pass == "" {
		log.Info("secret has no password", "key", s.cfg.PasswordKey)
	}
	return user, pass, nil
}
