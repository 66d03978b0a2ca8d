package flashmcp

import (
	"context"
	"fmt"
)

// Mount imports a snapshot of child's tools, resources, templates and prompts
// into s. Tool and prompt names become "prefix/name"; resource and template
// URIs become "prefix+uri". Entities registered on child later are not
// visible in s.
//
// When child is a proxy its remote surface is discovered first and the
// imported entities forward to the remote server. Mounting the same prefix
// twice replaces the mount table entry but keeps entities already imported.
//
// The mount table entry is recorded only after every import succeeds. When an
// import fails, entities imported before the failure stay registered in s and
// no mount is recorded.
func (s *Server) Mount(ctx context.Context, prefix string, child *Server) error {
	if prefix == "" {
		return fmt.Errorf("mount prefix must not be empty")
	}

	if child == nil {
		return fmt.Errorf("mount %s: nil server", prefix)
	}

	if s.remote != nil {
		return fmt.Errorf("mount %s: cannot mount into a proxy", prefix)
	}

	if child == s {
		return fmt.Errorf("mount %s: cannot mount a server into itself", prefix)
	}

	if child.remote != nil {
		if err := child.remote.discover(ctx); err != nil {
			return fmt.Errorf("mount %s: %w", prefix, err)
		}
	}

	if err := s.tools.Import(child.tools, prefix); err != nil {
		return fmt.Errorf("mount %s: %w", prefix, err)
	}

	if err := s.resources.Import(child.resources, prefix); err != nil {
		return fmt.Errorf("mount %s: %w", prefix, err)
	}

	if err := s.prompts.Import(child.prompts, prefix); err != nil {
		return fmt.Errorf("mount %s: %w", prefix, err)
	}

	s.mountsMu.Lock()
	s.mounts[prefix] = child
	s.mountsMu.Unlock()

	s.log.Debug("Mounted server", "prefix", prefix, "child", child.name)

	return nil
}
