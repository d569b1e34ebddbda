// Package redisconn is the connector adapter: it turns a resolved credential
// parameter map into a live go-redis client. It is the only package that
// knows the mapping between credential fields and redis.Options.
package redisconn

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/christophertubbs/redispass/internal/domain/model"
	"github.com/christophertubbs/redispass/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.Connector = (*Connector)(nil)

// Connector opens Redis connections from credential parameter maps.
type Connector struct{}

// NewConnector creates a new Connector.
func NewConnector() *Connector {
	return &Connector{}
}

// Connect builds a go-redis client from the parameter map. The client dials
// lazily; callers that need proof of liveness ping the returned connection.
// Malformed parameters and TLS material failures wrap ErrConnectionFailed.
func (c *Connector) Connect(ctx context.Context, params map[string]any) (driven.Connection, error) {
	opts, err := optionsFromParams(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", driven.ErrConnectionFailed, err)
	}
	cred, err := credentialFromParams(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", driven.ErrConnectionFailed, err)
	}
	return &Conn{client: redis.NewClient(opts), cred: &cred}, nil
}

// Conn wraps a go-redis client as a driven.Connection.
type Conn struct {
	client *redis.Client
	// cred holds the exact parameters the connection was built from when the
	// client came through Connect. redis.NewClient back-fills zero options
	// with its own defaults, so for externally built clients Credential has
	// to reverse-map from the initialized options instead.
	cred *model.Credential
}

// NewConn wraps an existing client, e.g. one opened outside this package
// that should be registered into the store.
func NewConn(client *redis.Client) *Conn {
	return &Conn{client: client}
}

// Client exposes the underlying go-redis client.
func (c *Conn) Client() *redis.Client {
	return c.client
}

// Ping verifies the server is reachable and the credential authenticates.
func (c *Conn) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping %s: %w: %w", c.client.Options().Addr, driven.ErrConnectionFailed, err)
	}
	return nil
}

// Credential reports the effective parameters the client was built with,
// mapped back into a credential record.
func (c *Conn) Credential() model.Credential {
	if c.cred != nil {
		return *c.cred
	}
	return CredentialFromOptions(c.client.Options())
}

// Close releases the client's connection pool.
func (c *Conn) Close() error {
	return c.client.Close()
}

// optionsFromParams translates a credential parameter map into redis.Options.
//
// decode_responses, encoding, encoding_errors, health_check_interval, and
// socket_keepalive are persisted and selectable but have no redis.Options
// equivalent (go-redis decodes responses itself and manages keepalive and
// liveness internally), so they do not influence the client.
func optionsFromParams(params map[string]any) (*redis.Options, error) {
	host, err := stringParam(params, "host", "localhost")
	if err != nil {
		return nil, err
	}
	port, err := intParam(params, "port", 6379)
	if err != nil {
		return nil, err
	}
	db, err := intParam(params, "db", 0)
	if err != nil {
		return nil, err
	}

	opts := &redis.Options{
		Addr: net.JoinHostPort(host, strconv.Itoa(port)),
		DB:   db,
	}

	if username, err := optStringParam(params, "username"); err != nil {
		return nil, err
	} else if username != nil {
		opts.Username = *username
	}
	if password, err := optStringParam(params, "password"); err != nil {
		return nil, err
	} else if password != nil {
		opts.Password = *password
	}
	if clientName, err := optStringParam(params, "client_name"); err != nil {
		return nil, err
	} else if clientName != nil {
		opts.ClientName = *clientName
	}

	if timeout, err := optFloatParam(params, "socket_timeout"); err != nil {
		return nil, err
	} else if timeout != nil {
		opts.ReadTimeout = secondsToDuration(*timeout)
		opts.WriteTimeout = secondsToDuration(*timeout)
	}
	if timeout, err := optFloatParam(params, "socket_connect_timeout"); err != nil {
		return nil, err
	} else if timeout != nil {
		opts.DialTimeout = secondsToDuration(*timeout)
	}

	if retry, err := boolParam(params, "retry_on_timeout", false); err != nil {
		return nil, err
	} else if retry {
		opts.MaxRetries = 3
	}

	useTLS, err := boolParam(params, "ssl", false)
	if err != nil {
		return nil, err
	}
	if useTLS {
		tlsConfig, err := tlsConfigFromParams(params, host)
		if err != nil {
			return nil, err
		}
		opts.TLSConfig = tlsConfig
	}

	return opts, nil
}

// tlsConfigFromParams builds the TLS configuration for ssl=true credentials:
// server name from the host, optional client keypair, optional CA bundle.
// Verification follows the credential's ssl_cert_reqs and ssl_check_hostname
// pair: "none" disables verification entirely, and ssl_check_hostname=false
// (the default) verifies the certificate chain without matching the
// hostname, which Go expresses as InsecureSkipVerify plus a custom
// chain-only VerifyPeerCertificate.
func tlsConfigFromParams(params map[string]any, host string) (*tls.Config, error) {
	certReqs, err := stringParam(params, "ssl_cert_reqs", "required")
	if err != nil {
		return nil, err
	}
	checkHostname, err := boolParam(params, "ssl_check_hostname", false)
	if err != nil {
		return nil, err
	}

	tlsConfig := &tls.Config{ServerName: host}

	keyfile, err := optStringParam(params, "ssl_keyfile")
	if err != nil {
		return nil, err
	}
	certfile, err := optStringParam(params, "ssl_certfile")
	if err != nil {
		return nil, err
	}
	if keyfile != nil && certfile != nil {
		pair, err := tls.LoadX509KeyPair(*certfile, *keyfile)
		if err != nil {
			return nil, fmt.Errorf("load client keypair: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{pair}
	}

	caCerts, err := optStringParam(params, "ssl_ca_certs")
	if err != nil {
		return nil, err
	}
	if caCerts != nil {
		pem, err := os.ReadFile(*caCerts)
		if err != nil {
			return nil, fmt.Errorf("read CA bundle: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("CA bundle %q contains no certificates", *caCerts)
		}
		tlsConfig.RootCAs = pool
	}

	switch {
	case certReqs == "none":
		tlsConfig.InsecureSkipVerify = true
	case !checkHostname:
		tlsConfig.InsecureSkipVerify = true
		tlsConfig.VerifyPeerCertificate = chainOnlyVerifier(tlsConfig.RootCAs)
	}

	return tlsConfig, nil
}

// chainOnlyVerifier validates the peer's certificate chain against roots
// (nil meaning the system pool) without matching the leaf against any
// hostname. Used for ssl_check_hostname=false with verification still
// required.
func chainOnlyVerifier(roots *x509.CertPool) func([][]byte, [][]*x509.Certificate) error {
	return func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
		if len(rawCerts) == 0 {
			return fmt.Errorf("server presented no certificates")
		}

		certs := make([]*x509.Certificate, 0, len(rawCerts))
		for _, raw := range rawCerts {
			cert, err := x509.ParseCertificate(raw)
			if err != nil {
				return fmt.Errorf("parse server certificate: %w", err)
			}
			certs = append(certs, cert)
		}

		opts := x509.VerifyOptions{
			Roots:         roots,
			Intermediates: x509.NewCertPool(),
		}
		for _, cert := range certs[1:] {
			opts.Intermediates.AddCert(cert)
		}

		if _, err := certs[0].Verify(opts); err != nil {
			return fmt.Errorf("verify server certificate chain: %w", err)
		}
		return nil
	}
}

// credentialFromParams rebuilds a credential record from a parameter map,
// applying every schema-named entry over the defaults. Non-schema override
// keys are ignored; they belong to the connector, not the credential.
func credentialFromParams(params map[string]any) (model.Credential, error) {
	cred := model.DefaultCredential()
	for _, field := range model.Fields() {
		value, ok := params[field.Name()]
		if !ok {
			continue
		}
		if err := field.Set(&cred, value); err != nil {
			return model.Credential{}, err
		}
	}
	return cred, nil
}

// go-redis back-fills zero options when a client is constructed; values that
// equal these initialized defaults are indistinguishable from "never set"
// when reverse-mapping an external client's options.
const (
	initializedMaxRetries  = 3
	initializedDialTimeout = 5 * time.Second
	initializedReadTimeout = 3 * time.Second
)

// CredentialFromOptions maps a client's effective options back into a
// credential record, so live connections can be registered. Fields with no
// options equivalent keep their defaults, as do options still at go-redis's
// initialized defaults: a client built from all-zero options registers as an
// all-defaults credential rather than one with spurious retry and timeout
// customizations.
func CredentialFromOptions(opts *redis.Options) model.Credential {
	cred := model.DefaultCredential()

	if host, portStr, err := net.SplitHostPort(opts.Addr); err == nil {
		cred.Host = host
		if port, err := strconv.Atoi(portStr); err == nil {
			cred.Port = port
		}
	} else if opts.Addr != "" {
		cred.Host = opts.Addr
	}

	if opts.Username != "" {
		username := opts.Username
		cred.Username = &username
	}
	if opts.Password != "" {
		password := opts.Password
		cred.Password = &password
	}
	cred.DB = opts.DB

	if opts.ClientName != "" {
		clientName := opts.ClientName
		cred.ClientName = &clientName
	}
	if opts.ReadTimeout > 0 && opts.ReadTimeout != initializedReadTimeout {
		timeout := opts.ReadTimeout.Seconds()
		cred.SocketTimeout = &timeout
	}
	if opts.DialTimeout > 0 && opts.DialTimeout != initializedDialTimeout {
		timeout := opts.DialTimeout.Seconds()
		cred.SocketConnectTimeout = &timeout
	}
	if opts.MaxRetries > 0 && opts.MaxRetries != initializedMaxRetries {
		cred.RetryOnTimeout = true
	}
	if opts.TLSConfig != nil {
		cred.SSL = true
		switch {
		case opts.TLSConfig.InsecureSkipVerify && opts.TLSConfig.VerifyPeerCertificate == nil:
			cred.SSLCertReqs = "none"
		case !opts.TLSConfig.InsecureSkipVerify:
			cred.SSLCheckHostname = true
		}
	}

	return cred
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

func stringParam(params map[string]any, name, fallback string) (string, error) {
	value, ok := params[name]
	if !ok || value == nil {
		return fallback, nil
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("parameter %q: expected string, got %T", name, value)
	}
	return s, nil
}

func optStringParam(params map[string]any, name string) (*string, error) {
	value, ok := params[name]
	if !ok || value == nil {
		return nil, nil
	}
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("parameter %q: expected string, got %T", name, value)
	}
	return &s, nil
}

func intParam(params map[string]any, name string, fallback int) (int, error) {
	value, ok := params[name]
	if !ok || value == nil {
		return fallback, nil
	}
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("parameter %q: expected integer, got %T", name, value)
	}
}

func optFloatParam(params map[string]any, name string) (*float64, error) {
	value, ok := params[name]
	if !ok || value == nil {
		return nil, nil
	}
	switch v := value.(type) {
	case float64:
		return &v, nil
	case int:
		f := float64(v)
		return &f, nil
	case int64:
		f := float64(v)
		return &f, nil
	default:
		return nil, fmt.Errorf("parameter %q: expected number, got %T", name, value)
	}
}

func boolParam(params map[string]any, name string, fallback bool) (bool, error) {
	value, ok := params[name]
	if !ok || value == nil {
		return fallback, nil
	}
	b, ok := value.(bool)
	if !ok {
		return false, fmt.Errorf("parameter %q: expected boolean, got %T", name, value)
	}
	return b, nil
}
