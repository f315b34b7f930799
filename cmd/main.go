package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/amine-amaach/simulators/uaAddressSpace/ports"
	"github.com/amine-amaach/simulators/uaAddressSpace/services"
	"github.com/amine-amaach/simulators/uaAddressSpace/utils"
	"github.com/awcullen/opcua/ua"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func main() {
	version := "v1.0.0"
	website := "https://www.linkedin.com/in/amine-amaach/"
	banner := `
 _   _   _      _       _     _                     ____
| | | | / \    / \   __| | __| |_ __ ___  ___ ___  / ___| _ __   __ _  ___ ___  %s
| | | |/ _ \  / _ \ / _  |/ _  | '__/ _ \/ __/ __| \___ \| '_ \ / _  |/ __/ _ \
| |_| / ___ \/ ___ \ (_| | (_| | | |  __/\__ \__ \  ___) | |_) | (_| | (_|  __/
 \___/_/   \_\_/  \_\__,_|\__,_|_|  \___||___/___/ |____/| .__/ \__,_|\___\___|
Standard OPC UA Address Space Explorer                   |_|
________________________________________________________________O/____________
%s                                                              O\
`
	// Print Banner
	fmt.Println(utils.Colorize(fmt.Sprintf(banner, version, website), utils.Cyan))

	logger := utils.NewLogger()
	defer logger.Sync()

	cfg := utils.NewConfig(logger)

	// Build the standard namespace catalog. Attribute seeding is opt-in,
	// browse works out of the box.
	standard := services.NewStandardNamespaceService()
	if cfg.SeedRootAttributes {
		standard.FillRootAttributes()
		logger.Info(utils.Colorize("Root attributes seeded ⚙️", utils.Blue))
	}
	var namespace ports.AddressSpacePort = standard

	start := ua.ParseNodeID(cfg.StartNode)
	if start == nil {
		logger.Error(errors.Errorf("invalid start node id %q", cfg.StartNode))
		return
	}

	var referenceType ua.NodeID
	if cfg.ReferenceType != "" {
		if referenceType = ua.ParseNodeID(cfg.ReferenceType); referenceType == nil {
			logger.Error(errors.Errorf("invalid reference type id %q", cfg.ReferenceType))
			return
		}
	}

	logger.Info(utils.Colorize(fmt.Sprintf("Browsing the address space from %s ...", start), utils.Green))
	walk(namespace, logger, start, referenceType, cfg, 0)

	// Attribute reads answer BadNotReadable unless seeded.
	readDemo(namespace, logger, start)

	// The standard namespace is read-only.
	writeDemo(namespace, logger, start)
}

// walk logs the reference hierarchy below node, recursing over the browsed
// targets up to the configured depth.
func walk(namespace ports.AddressSpacePort, logger *zap.SugaredLogger, node, referenceType ua.NodeID, cfg *utils.Config, depth int) {
	if depth > cfg.MaxDepth {
		return
	}
	refs := namespace.Browse(ua.BrowseDescription{
		NodeID:          node,
		BrowseDirection: parseDirection(cfg.BrowseDirection),
		ReferenceTypeID: referenceType,
		IncludeSubtypes: cfg.IncludeSubtypes,
		NodeClassMask:   cfg.NodeClassMask,
	})
	indent := strings.Repeat("   ", depth)
	for _, ref := range refs {
		logger.Infof("%s└─ %s (%s)", indent,
			utils.Colorize(ref.DisplayName.Text, utils.Cyan), ref.NodeID)
		if target := ua.ToNodeID(ref.NodeID, nil); target != nil {
			walk(namespace, logger, target, referenceType, cfg, depth+1)
		}
	}
}

func readDemo(namespace ports.AddressSpacePort, logger *zap.SugaredLogger, node ua.NodeID) {
	values := namespace.Read(&ua.ReadRequest{
		NodesToRead: []ua.ReadValueID{
			{NodeID: node, AttributeID: ua.AttributeIDDisplayName},
			{NodeID: node, AttributeID: ua.AttributeIDNodeClass},
		},
	})
	for _, v := range values {
		if v.StatusCode.IsBad() {
			logger.Warn(utils.Colorize(fmt.Sprintf("Read %s : 0x%08X", node, uint32(v.StatusCode)), utils.Yellow))
			continue
		}
		logger.Info(utils.Colorize(fmt.Sprintf("Read %s : %v", node, v.Value), utils.Green))
	}
}

func writeDemo(namespace ports.AddressSpacePort, logger *zap.SugaredLogger, node ua.NodeID) {
	t := time.Now().UTC()
	results := namespace.Write([]ua.WriteValue{
		{NodeID: node, AttributeID: ua.AttributeIDDisplayName, Value: ua.NewDataValue("root", 0, t, 0, t, 0)},
	})
	for _, status := range results {
		logger.Warn(utils.Colorize(fmt.Sprintf("Write %s : 0x%08X", node, uint32(status)), utils.Yellow))
	}
}

func parseDirection(s string) ua.BrowseDirection {
	switch strings.ToLower(s) {
	case "inverse":
		return ua.BrowseDirectionInverse
	case "both":
		return ua.BrowseDirectionBoth
	default:
		return ua.BrowseDirectionForward
	}
}
