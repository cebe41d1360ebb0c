package tripspec

const stop2016 = "STC_S_2016_"

const (
	brock          = "Brock"
	downtown       = "Downtown"
	dunkeldCarlton = "Dunkeld & Carlton"
	fairviewMall   = "Fairview Mall"
	ncNOTLCampus   = "NC NOTL Campus"
	penCtr         = "Pen Ctr"
	portRobinson   = "Port Robinson"
	thorold        = "Thorold"
	thoroldSouth   = "Thorold South"
	west           = "West"
)

func anchors(codes ...string) []string {
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = stop2016 + c
	}
	return out
}

// DefaultSpecs returns the St Catharines routes that are split on anchors.
func DefaultSpecs() []RouteSpec {
	return []RouteSpec{
		{RouteID: 14, Directions: []DirectionSpec{
			{ID: DirectionEast, Headsign: dunkeldCarlton, AnchorStopIDs: anchors("FVM", "Stop0710", "DnklCrlt")},
			{ID: DirectionWest, Headsign: fairviewMall, AnchorStopIDs: anchors("DnklCrlt", "Stop0470", "FVM")},
		}},
		{RouteID: 20, Directions: []DirectionSpec{
			{ID: 0, Headsign: thorold, AnchorStopIDs: anchors("Pen Cntr", "OrmdRich", "CrmtTowp")},
			{ID: 1, Headsign: penCtr, AnchorStopIDs: anchors("CrmtTowp", "TwnlQuen", "Stop0997", "Pen Cntr")},
		}},
		{RouteID: 22, Directions: []DirectionSpec{
			{ID: 0, Headsign: portRobinson, AnchorStopIDs: anchors("CrmtTowp", "BAS", "NiFlsAll", "Stop2206", "AlnbgLyn", "BIS")},
			{ID: 1, Headsign: thoroldSouth, AnchorStopIDs: anchors("BIS", "AlnbgLyn", "NiFlsAll", "BAS", "CrmtTowp")},
		}},
		{RouteID: 23, Directions: []DirectionSpec{
			{ID: 0, Headsign: west, AnchorStopIDs: anchors("BRU", "Stop0839", "MacTLout")},
			{ID: 1, Headsign: brock, AnchorStopIDs: anchors("MacTLout", "Stop0778", "PelmGndl", "BRU")},
		}},
		{RouteID: 25, Directions: []DirectionSpec{
			{ID: 0, Headsign: brock, AnchorStopIDs: anchors("DTT", "Stop0228", "BRU")},
			{ID: 1, Headsign: downtown, AnchorStopIDs: anchors("BRU", "Stop1206", "DTT")},
		}},
		{RouteID: 34, Directions: []DirectionSpec{
			{ID: 0, Headsign: penCtr, AnchorStopIDs: anchors("GlndCmps", "Stop0218", "Pen Cntr")},
			{ID: 1, Headsign: ncNOTLCampus, AnchorStopIDs: anchors("Pen Cntr", "Stop0632", "GlndCmps")},
		}},
		{RouteID: 120, Directions: []DirectionSpec{
			{ID: 0, Headsign: thorold, AnchorStopIDs: anchors("Pen Cntr", "OrmdRich", "CrmtTowp")},
			{ID: 1, Headsign: penCtr, AnchorStopIDs: anchors("CrmtTowp", "Stop1290", "Pen Cntr")},
		}},
		// 216 only publishes stops in direction 0
		{RouteID: 216, Directions: []DirectionSpec{
			{ID: 0, Headsign: brock, AnchorStopIDs: anchors("DTT", "GrdgGlmr", "BRU")},
			{ID: 1},
		}},
	}
}
