package models

// Summary is the compact context handed to the answering collaborator.
type Summary struct {
	OverallKPIs    KPI            `json:"overall_kpis"`
	RegionKPIs     []GroupKPI     `json:"region_kpis"`
	TopDrivers     []GroupKPI     `json:"top_10_drivers_by_fulfillment"`
	BottomDrivers  []GroupKPI     `json:"bottom_10_drivers_by_fulfillment"`
	CorporateKPIs  []GroupKPI     `json:"corporate_kpis"`
	TotalRows      int            `json:"total_rows_in_filtered_data"`
	DistanceFilter string         `json:"distance_filter_applied"`
	Hourly         []HourlyCounts `json:"hourly_category_counts"`
}
