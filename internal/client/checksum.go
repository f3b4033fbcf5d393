package client

import (
	"maps"
	"sort"

	"github.com/palemoky/stellar-empires/internal/logger"
	"github.com/palemoky/stellar-empires/internal/opt"
	"github.com/palemoky/stellar-empires/internal/protocol"
	"github.com/palemoky/stellar-empires/internal/protocol/codec"
)

// ChecksumMismatch describes one content domain whose digests differ.
// Local is zero when the client has no such domain.
type ChecksumMismatch struct {
	Domain string
	Server uint32
	Local  uint32
}

// CompareChecksums lists, by domain name, every server domain whose local
// digest differs. Domains only present locally are not listed.
func CompareChecksums(server, local map[string]uint32) []ChecksumMismatch {
	var out []ChecksumMismatch
	for domain, sum := range server {
		if l := local[domain]; l != sum {
			out = append(out, ChecksumMismatch{Domain: domain, Server: sum, Local: l})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Domain < out[j].Domain })
	return out
}

// VerifyCheckSum compares the server's content checksums carried by msg with
// the locally computed ones. It returns true only when both mappings are
// identical; each differing domain is logged as a warning.
func (a *App) VerifyCheckSum(msg *protocol.Message) bool {
	server, err := codec.ExtractContentChecksums(msg)
	if err != nil {
		logger.LogError("checksum message unreadable: %v", err)
		a.checksumOK = opt.Some(false)
		return false
	}

	var local map[string]uint32
	if a.checksums != nil {
		local = a.checksums.ComputeContentChecksums()
	}

	if maps.Equal(server, local) {
		logger.LogInfo("Checksum received from server matches client checksum.")
		a.checksumOK = opt.Some(true)
		return true
	}

	logger.LogWarn("Checksum received from server does not match client checksum.")
	for _, m := range CompareChecksums(server, local) {
		logger.LogWarn("Checksum for %s on server %d != client %d", m.Domain, m.Server, m.Local)
	}
	a.checksumOK = opt.Some(false)
	return false
}
