package types

// GraphNode is a rendered entity, ready for a force-directed layout.
type GraphNode struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Color    string `json:"color"`
	Size     int    `json:"size"`
	IsMain   bool   `json:"isMain"`
}

// GraphEdge joins two entities mentioned in the same sentence.
type GraphEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// AnalyzeRequest is the body accepted by the analyze endpoint.
type AnalyzeRequest struct {
	Text      string `json:"text"`
	MainTopic string `json:"main_topic"`
}
