// ABOUTME: GraphViz rendering of the member network
// ABOUTME: Draws members grouped by company, accepted connections and recommendations
package viz

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/google/uuid"
	"github.com/harperreed/bizlink/db"
	"github.com/harperreed/bizlink/display"
	"github.com/harperreed/bizlink/models"
)

type GraphGenerator struct {
	db *sql.DB
}

func NewGraphGenerator(database *sql.DB) *GraphGenerator {
	return &GraphGenerator{db: database}
}

// Snapshot is everything a network graph is drawn from.
type Snapshot struct {
	Members         []models.User
	Companies       []models.Company
	Connections     []models.Connection
	Recommendations []models.Recommendation
}

// Load reads the whole network from the database.
func (g *GraphGenerator) Load(ctx context.Context) (*Snapshot, error) {
	members, err := db.FindUsers(ctx, g.db, "", nil, 10000)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch members: %w", err)
	}
	companies, err := db.FindCompanies(ctx, g.db, "", 10000)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch companies: %w", err)
	}
	conns, err := db.ListAllAcceptedConnections(ctx, g.db)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch connections: %w", err)
	}
	recs, err := db.ListAllRecommendations(ctx, g.db)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recommendations: %w", err)
	}
	return &Snapshot{Members: members, Companies: companies, Connections: conns, Recommendations: recs}, nil
}

// NetworkGraph renders the network as DOT. When focus is set only the
// member's own edges and neighbours are drawn.
func (g *GraphGenerator) NetworkGraph(ctx context.Context, focus *uuid.UUID) (string, error) {
	snap, err := g.Load(ctx)
	if err != nil {
		return "", err
	}
	if focus != nil {
		snap = snap.Around(*focus)
	}
	return Render(ctx, snap)
}

// Around keeps the edges touching id and the members they reach.
func (s *Snapshot) Around(id uuid.UUID) *Snapshot {
	keep := map[uuid.UUID]bool{id: true}
	out := &Snapshot{Companies: s.Companies}

	for _, c := range s.Connections {
		if c.RequesterID == id || c.AddresseeID == id {
			out.Connections = append(out.Connections, c)
			keep[c.RequesterID] = true
			keep[c.AddresseeID] = true
		}
	}
	for _, r := range s.Recommendations {
		if r.RecommenderID == id || r.RecommendedToID == id || r.RecommendedUserID == id {
			out.Recommendations = append(out.Recommendations, r)
			keep[r.RecommenderID] = true
			keep[r.RecommendedUserID] = true
		}
	}
	for _, m := range s.Members {
		if keep[m.ID] {
			out.Members = append(out.Members, m)
		}
	}
	return out
}

// Render draws a snapshot. Members are ellipses linked to their company box,
// connections are undirected and recommendations point from the recommender
// to the recommended member.
func Render(ctx context.Context, snap *Snapshot) (string, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz: %w", err)
	}
	defer gv.Close()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer graph.Close()

	graph.SetLabel("Member Network")
	graph.SetRankDir(cgraph.LRRank)

	used := map[uuid.UUID]bool{}
	for _, m := range snap.Members {
		if m.CompanyID != nil {
			used[*m.CompanyID] = true
		}
	}

	companyNodes := make(map[uuid.UUID]*cgraph.Node)
	for _, company := range snap.Companies {
		if !used[company.ID] {
			continue
		}
		node, err := graph.CreateNodeByName("company_" + company.ID.String())
		if err != nil {
			return "", fmt.Errorf("failed to create company node: %w", err)
		}
		node.SetLabel(company.Name)
		node.SetShape("box")
		node.SetStyle("filled")
		node.SetFillColor("lightblue")
		companyNodes[company.ID] = node
	}

	memberNodes := make(map[uuid.UUID]*cgraph.Node)
	for _, m := range snap.Members {
		node, err := graph.CreateNodeByName("member_" + m.ID.String())
		if err != nil {
			return "", fmt.Errorf("failed to create member node: %w", err)
		}
		node.SetLabel(m.Name)
		node.SetShape("ellipse")
		node.SetStyle("filled")
		if m.IsActiveMember() {
			node.SetFillColor("lightgreen")
		} else {
			node.SetFillColor("lightgrey")
		}
		memberNodes[m.ID] = node

		if m.CompanyID != nil {
			if companyNode, ok := companyNodes[*m.CompanyID]; ok {
				edge, err := graph.CreateEdgeByName("works_at_"+m.ID.String(), node, companyNode)
				if err != nil {
					return "", fmt.Errorf("failed to create edge: %w", err)
				}
				edge.SetStyle("dotted")
			}
		}
	}

	for _, c := range snap.Connections {
		from, ok1 := memberNodes[c.RequesterID]
		to, ok2 := memberNodes[c.AddresseeID]
		if !ok1 || !ok2 {
			continue
		}
		edge, err := graph.CreateEdgeByName("connection_"+c.ID.String(), from, to)
		if err != nil {
			return "", fmt.Errorf("failed to create connection edge: %w", err)
		}
		edge.SetDir("none")
	}

	for _, r := range snap.Recommendations {
		from, ok1 := memberNodes[r.RecommenderID]
		to, ok2 := memberNodes[r.RecommendedUserID]
		if !ok1 || !ok2 {
			continue
		}
		edge, err := graph.CreateEdgeByName("recommendation_"+r.ID.String(), from, to)
		if err != nil {
			return "", fmt.Errorf("failed to create recommendation edge: %w", err)
		}
		edge.SetLabel(display.RecommendationStatusText(r.Status))
		edge.SetStyle("dashed")
		edge.SetColor(display.PriorityColor(r.PriorityLevel))
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}
	return buf.String(), nil
}
