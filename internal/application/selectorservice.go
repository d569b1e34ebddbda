package application

import (
	"context"
	"log/slog"
	"sort"

	"github.com/christophertubbs/redispass/internal/domain/model"
	"github.com/christophertubbs/redispass/internal/domain/port/driven"
)

// FilterCredentials returns the subset of creds that satisfies every
// constraint by exact value equality, preserving input order. Constraint
// names are validated against the credential schema before any filtering;
// an unknown name fails the whole call with model.UnknownFieldError.
func FilterCredentials(creds []model.Credential, constraints map[string]any) ([]model.Credential, error) {
	for name := range constraints {
		if _, err := model.FieldByName(name); err != nil {
			return nil, err
		}
	}

	matched := make([]model.Credential, 0, len(creds))
	for _, cred := range creds {
		ok, err := cred.Matches(constraints)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, cred)
		}
	}

	return matched, nil
}

// RankBySpecificity sorts credentials by ascending specificity in place and
// returns the slice. The sort is stable: equal-specificity credentials keep
// their load order, so identical store state always ranks the same way.
func RankBySpecificity(creds []model.Credential) []model.Credential {
	sort.SliceStable(creds, func(i, j int) bool {
		return creds[i].Specificity() < creds[j].Specificity()
	})
	return creds
}

// SelectorService resolves which stored credential to use for a connection.
// It filters the store against caller constraints and prefers the broadest
// (least customized) credential that satisfies all of them.
type SelectorService struct {
	store     driven.CredentialStore
	connector driven.Connector
	logger    *slog.Logger
}

// NewSelectorService creates a new SelectorService.
func NewSelectorService(store driven.CredentialStore, connector driven.Connector) *SelectorService {
	return &SelectorService{
		store:     store,
		connector: connector,
		logger:    slog.Default(),
	}
}

// Select resolves the best stored credential for the given constraints.
//
// With no constraints, an empty store yields the default credential (an
// unauthenticated localhost connection) and a non-empty store yields the
// least-specific stored record. With constraints, the store is filtered by
// exact field equality; an empty result is a *NoMatchError even when the
// store itself is empty, so legitimate constraints are never silently
// ignored. Ties on specificity resolve to the earlier-loaded credential.
func (s *SelectorService) Select(ctx context.Context, constraints map[string]any) (model.Credential, error) {
	for name := range constraints {
		if _, err := model.FieldByName(name); err != nil {
			return model.Credential{}, err
		}
	}

	creds, err := s.store.Load(ctx)
	if err != nil {
		return model.Credential{}, err
	}

	if len(constraints) == 0 {
		if len(creds) == 0 {
			s.logger.Debug("no constraints and empty store, using default credential")
			return model.DefaultCredential(), nil
		}
		return RankBySpecificity(creds)[0], nil
	}

	matched, err := FilterCredentials(creds, constraints)
	if err != nil {
		return model.Credential{}, err
	}
	if len(matched) == 0 {
		return model.Credential{}, &NoMatchError{Constraints: constraints}
	}

	best := RankBySpecificity(matched)[0]
	s.logger.Debug("credential selected",
		"host", best.Host,
		"candidates", len(matched),
		"specificity", best.Specificity(),
	)
	return best, nil
}

// SelectByHost resolves the best stored credential whose host equals host.
// Returns *NoCredentialsForHostError when the store holds no record for that
// host.
func (s *SelectorService) SelectByHost(ctx context.Context, host string) (model.Credential, error) {
	creds, err := s.store.Load(ctx)
	if err != nil {
		return model.Credential{}, err
	}

	matched, err := FilterCredentials(creds, map[string]any{"host": host})
	if err != nil {
		return model.Credential{}, err
	}
	if len(matched) == 0 {
		return model.Credential{}, &NoCredentialsForHostError{Host: host}
	}

	return RankBySpecificity(matched)[0], nil
}

// List returns every stored credential in load order.
func (s *SelectorService) List(ctx context.Context) ([]model.Credential, error) {
	return s.store.Load(ctx)
}

// Save persists a credential, upserting on its natural key.
func (s *SelectorService) Save(ctx context.Context, cred model.Credential) error {
	if err := s.store.Save(ctx, cred); err != nil {
		return err
	}
	s.logger.Info("credential saved", "host", cred.Host, "port", cred.Port, "db", cred.DB)
	return nil
}

// Register derives a credential from an already-open connection's effective
// parameters and persists it for later selection.
func (s *SelectorService) Register(ctx context.Context, conn driven.Connection) error {
	return s.Save(ctx, conn.Credential())
}

// Connect resolves a credential via Select and opens a live connection with
// it. Overrides are merged into the resolved parameters, overrides winning.
func (s *SelectorService) Connect(ctx context.Context, constraints, overrides map[string]any) (driven.Connection, error) {
	cred, err := s.Select(ctx, constraints)
	if err != nil {
		return nil, err
	}
	return s.connector.Connect(ctx, cred.ConnectionParams(overrides))
}

// ConnectByHost resolves a credential via SelectByHost, opens a connection,
// and pings it before handing it back.
func (s *SelectorService) ConnectByHost(ctx context.Context, host string, overrides map[string]any) (driven.Connection, error) {
	cred, err := s.SelectByHost(ctx, host)
	if err != nil {
		return nil, err
	}

	conn, err := s.connector.Connect(ctx, cred.ConnectionParams(overrides))
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}
