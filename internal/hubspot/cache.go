package hubspot

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// StageCache memoizes the deal pipeline stage catalog for the lifetime of the
// process. The catalog loads once on first use and is never refreshed; a
// failed load is retried on the next request.
type StageCache struct {
	mu     sync.Mutex
	loaded bool
	stages map[string]StageInfo
	client *Client
	logger *zap.Logger
}

// StageInfo is the display metadata of one pipeline stage
type StageInfo struct {
	Label        string
	DisplayOrder int
}

// NewStageCache creates an empty stage cache backed by the given client
func NewStageCache(client *Client, logger *zap.Logger) *StageCache {
	return &StageCache{
		stages: make(map[string]StageInfo),
		client: client,
		logger: logger,
	}
}

// Ensure loads the stage catalog if it has not been loaded yet. The lock is
// held across the fetch so concurrent cold-start requests trigger exactly one
// upstream call. Load failures are logged and swallowed; lookups then fall
// back to raw stage IDs.
func (c *StageCache) Ensure(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return
	}

	pipelines, err := c.client.GetDealPipelines(ctx)
	if err != nil {
		c.logger.Warn("failed to load deal stage catalog", zap.Error(err))
		return
	}

	stages := make(map[string]StageInfo)
	for _, pipeline := range pipelines {
		for _, stage := range pipeline.Stages {
			stages[stage.ID] = StageInfo{
				Label:        stage.Label,
				DisplayOrder: stage.DisplayOrder,
			}
		}
	}

	c.stages = stages
	c.loaded = true
	c.logger.Info("loaded deal stage catalog", zap.Int("stages", len(stages)))
}

// Lookup returns the label and display order of a stage ID. When the stage is
// unknown (or the catalog never loaded) it reports ok=false and the caller
// falls back to the raw ID.
func (c *StageCache) Lookup(stageID string) (label string, displayOrder int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	info, ok := c.stages[stageID]
	if !ok {
		return "", 0, false
	}
	return info.Label, info.DisplayOrder, true
}

// OwnerCache memoizes resolved owner display names for the lifetime of the
// process. Failed lookups are not cached so they get retried later.
type OwnerCache struct {
	mu     sync.RWMutex
	names  map[string]string
	client *Client
	logger *zap.Logger
}

// NewOwnerCache creates an empty owner cache backed by the given client
func NewOwnerCache(client *Client, logger *zap.Logger) *OwnerCache {
	return &OwnerCache{
		names:  make(map[string]string),
		client: client,
		logger: logger,
	}
}

// EnsureAll resolves every owner ID not yet cached, fanning the fetches out
// concurrently. One owner failing only degrades that owner; the rest of the
// batch still lands in the cache.
func (c *OwnerCache) EnsureAll(ctx context.Context, ownerIDs []string) {
	c.mu.RLock()
	seen := make(map[string]bool, len(ownerIDs))
	var uncached []string
	for _, id := range ownerIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		if _, ok := c.names[id]; !ok {
			uncached = append(uncached, id)
		}
	}
	c.mu.RUnlock()

	if len(uncached) == 0 {
		return
	}

	resolved := make([]string, len(uncached))
	var wg sync.WaitGroup
	for i, id := range uncached {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			owner, err := c.client.GetOwner(ctx, id)
			if err != nil {
				c.logger.Warn("failed to resolve deal owner",
					zap.String("owner_id", id),
					zap.Error(err),
				)
				return
			}
			resolved[i] = displayName(owner)
		}(i, id)
	}
	wg.Wait()

	c.mu.Lock()
	for i, id := range uncached {
		if resolved[i] != "" {
			c.names[id] = resolved[i]
		}
	}
	c.mu.Unlock()
}

// Resolve returns the cached display name for an owner ID, or a synthetic
// placeholder when the owner never resolved.
func (c *OwnerCache) Resolve(ownerID string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if name, ok := c.names[ownerID]; ok {
		return name
	}
	return PlaceholderName(ownerID)
}

// PlaceholderName is the synthetic display name used when an owner record
// cannot be fetched
func PlaceholderName(ownerID string) string {
	return "Owner #" + ownerID
}

// displayName prefers the real name, then the email, then a placeholder
func displayName(owner *Owner) string {
	parts := make([]string, 0, 2)
	if s := strings.TrimSpace(owner.FirstName); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(owner.LastName); s != "" {
		parts = append(parts, s)
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	if owner.Email != "" {
		return owner.Email
	}
	return PlaceholderName(owner.ID)
}
