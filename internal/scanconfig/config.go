package scanconfig

// Config holds every threshold of the smart-money scan
// ⭐ SSOT: 모든 임계값은 여기서만 정의 (코드 내 매직넘버 금지)
type Config struct {
	Flow           Flow           `yaml:"flow" json:"flow"`
	OpenInterest   OpenInterest   `yaml:"open_interest" json:"open_interest"`
	Gamma          Gamma          `yaml:"gamma" json:"gamma"`
	IVTerm         IVTerm         `yaml:"iv_term" json:"iv_term"`
	Skew           Skew           `yaml:"skew" json:"skew"`
	DarkPool       DarkPool       `yaml:"dark_pool" json:"dark_pool"`
	Institutional  Institutional  `yaml:"institutional" json:"institutional"`
	Insider        Insider        `yaml:"insider" json:"insider"`
	Recommendation Recommendation `yaml:"recommendation" json:"recommendation"`
	Legislative    Legislative    `yaml:"legislative" json:"legislative"`
	Resolver       Resolver       `yaml:"resolver" json:"resolver"`
	Aggregator     Aggregator     `yaml:"aggregator" json:"aggregator"`
	Stability      Stability      `yaml:"stability" json:"stability"`
	Export         Export         `yaml:"export" json:"export"`

	// HighBeta lists instruments eligible for the high-beta amplifier
	HighBeta []string `yaml:"high_beta" json:"high_beta" validate:"dive,required"`
}

// Flow S2: 옵션 플로우 스코어러
type Flow struct {
	MinTrades    int `yaml:"min_trades" json:"min_trades" default:"5" validate:"gte=1"`
	ShortDTEDays int `yaml:"short_dte_days" json:"short_dte_days" default:"7" validate:"gte=0"`
	LongDTEDays  int `yaml:"long_dte_days" json:"long_dte_days" default:"180" validate:"gtfield=ShortDTEDays"`

	// 단기물 방향성 (primary lean)
	ShortLeanMinPremium float64 `yaml:"short_lean_min_premium" json:"short_lean_min_premium" default:"200000" validate:"gte=0"`
	ShortLeanMinRatio   float64 `yaml:"short_lean_min_ratio" json:"short_lean_min_ratio" default:"0.30" validate:"gte=0,lte=1"`
	ShortBullishShare   float64 `yaml:"short_bullish_share" json:"short_bullish_share" default:"0.65" validate:"gt=0.5,lte=1"`
	ShortMixedRatio     float64 `yaml:"short_mixed_ratio" json:"short_mixed_ratio" default:"0.50" validate:"gte=0,lte=1"`
	ShortLeanScore      float64 `yaml:"short_lean_score" json:"short_lean_score" default:"0.12" validate:"gte=0"`
	ShortMixedScore     float64 `yaml:"short_mixed_score" json:"short_mixed_score" default:"0.04" validate:"gte=0"`

	// 신규 포지션 (vol/OI)
	FreshVolOI      float64 `yaml:"fresh_vol_oi" json:"fresh_vol_oi" default:"3.0" validate:"gtfield=NewVolOI"`
	FreshVolOIScore float64 `yaml:"fresh_vol_oi_score" json:"fresh_vol_oi_score" default:"0.08" validate:"gte=0"`
	NewVolOI        float64 `yaml:"new_vol_oi" json:"new_vol_oi" default:"2.0" validate:"gt=0"`
	NewVolOIScore   float64 `yaml:"new_vol_oi_score" json:"new_vol_oi_score" default:"0.04" validate:"gte=0"`

	// 전체 플로우 (reactive, secondary)
	StrongDirectionalPct float64 `yaml:"strong_directional_pct" json:"strong_directional_pct" default:"0.70" validate:"gt=0.5,lte=1"`
	TotalFlowScore       float64 `yaml:"total_flow_score" json:"total_flow_score" default:"0.05" validate:"gte=0"`

	// 긴급도 (short-dated premium magnitude)
	UrgentPremium      float64 `yaml:"urgent_premium" json:"urgent_premium" default:"10000000" validate:"gtfield=SignificantPremium"`
	UrgentScore        float64 `yaml:"urgent_score" json:"urgent_score" default:"0.08" validate:"gte=0"`
	SignificantPremium float64 `yaml:"significant_premium" json:"significant_premium" default:"1000000" validate:"gtfield=MinUrgencyPremium"`
	SignificantScore   float64 `yaml:"significant_score" json:"significant_score" default:"0.05" validate:"gte=0"`
	MinUrgencyPremium  float64 `yaml:"min_urgency_premium" json:"min_urgency_premium" default:"200000" validate:"gte=0"`
	MinUrgencyScore    float64 `yaml:"min_urgency_score" json:"min_urgency_score" default:"0.02" validate:"gte=0"`
	MaxScore           float64 `yaml:"max_score" json:"max_score" default:"0.35" validate:"gt=0,lte=1"`
}

// ShortBearishShare mirrors ShortBullishShare around 0.5
func (f Flow) ShortBearishShare() float64 { return 1 - f.ShortBullishShare }

// OpenInterest S2: 미결제약정 스코어러
type OpenInterest struct {
	BothSidesMin float64 `yaml:"both_sides_min" json:"both_sides_min" default:"1000" validate:"gte=0"`
	StrongRatio  float64 `yaml:"strong_ratio" json:"strong_ratio" default:"2.5" validate:"gtfield=LeanRatio"`
	StrongScore  float64 `yaml:"strong_score" json:"strong_score" default:"0.10" validate:"gte=0"`
	LeanRatio    float64 `yaml:"lean_ratio" json:"lean_ratio" default:"1.7" validate:"gt=1"`
	LeanScore    float64 `yaml:"lean_score" json:"lean_score" default:"0.05" validate:"gte=0"`

	PureBuildMin float64 `yaml:"pure_build_min" json:"pure_build_min" default:"5000" validate:"gte=0"`
	PureOtherMax float64 `yaml:"pure_other_max" json:"pure_other_max" default:"500" validate:"gte=0"`
	PureScore    float64 `yaml:"pure_score" json:"pure_score" default:"0.10" validate:"gte=0"`

	DominantMin       float64 `yaml:"dominant_min" json:"dominant_min" default:"2000" validate:"gte=0"`
	DominantPct       float64 `yaml:"dominant_pct" json:"dominant_pct" default:"20" validate:"gte=0"`
	DominantOtherFrac float64 `yaml:"dominant_other_frac" json:"dominant_other_frac" default:"0.5" validate:"gt=0,lte=1"`
	DominantScore     float64 `yaml:"dominant_score" json:"dominant_score" default:"0.05" validate:"gte=0"`

	PctSkewMin       float64 `yaml:"pct_skew_min" json:"pct_skew_min" default:"15" validate:"gte=0"`
	PctSkewOtherFrac float64 `yaml:"pct_skew_other_frac" json:"pct_skew_other_frac" default:"0.3" validate:"gt=0,lte=1"`
	PctSkewAbsMin    float64 `yaml:"pct_skew_abs_min" json:"pct_skew_abs_min" default:"500" validate:"gte=0"`
	PctSkewScore     float64 `yaml:"pct_skew_score" json:"pct_skew_score" default:"0.05" validate:"gte=0"`

	// 다일 누적 (enrichment)
	SustainedDays      int     `yaml:"sustained_days" json:"sustained_days" default:"5" validate:"gtefield=AccumDays"`
	SustainedContracts int     `yaml:"sustained_contracts" json:"sustained_contracts" default:"5" validate:"gte=0"`
	SustainedScore     float64 `yaml:"sustained_score" json:"sustained_score" default:"0.04" validate:"gte=0"`
	AccumDays          int     `yaml:"accum_days" json:"accum_days" default:"3" validate:"gte=1"`
	AccumContracts     int     `yaml:"accum_contracts" json:"accum_contracts" default:"3" validate:"gte=0"`
	AccumScore         float64 `yaml:"accum_score" json:"accum_score" default:"0.02" validate:"gte=0"`
	VolGtOIMin         int     `yaml:"vol_gt_oi_min" json:"vol_gt_oi_min" default:"5" validate:"gte=1"`
	VolGtOIScore       float64 `yaml:"vol_gt_oi_score" json:"vol_gt_oi_score" default:"0.03" validate:"gte=0"`

	TopContracts    int     `yaml:"top_contracts" json:"top_contracts" default:"10" validate:"gte=1"`
	TopMinContracts int     `yaml:"top_min_contracts" json:"top_min_contracts" default:"3" validate:"gte=1"`
	TopMajority     float64 `yaml:"top_majority" json:"top_majority" default:"0.6" validate:"gt=0.5,lte=1"`
	TopScore        float64 `yaml:"top_score" json:"top_score" default:"0.03" validate:"gte=0"`

	MaxScore float64 `yaml:"max_score" json:"max_score" default:"0.15" validate:"gt=0,lte=1"`
}

// Gamma S2: 감마 익스포저 스코어러
type Gamma struct {
	FlipScore       float64 `yaml:"flip_score" json:"flip_score" default:"0.08" validate:"gte=0"`
	AmplifierMinGEX float64 `yaml:"amplifier_min_gex" json:"amplifier_min_gex" default:"100000" validate:"gte=0"` // |net GEX| below zero
	AmplifierScale  float64 `yaml:"amplifier_scale" json:"amplifier_scale" default:"5000000" validate:"gt=0"`
	AmplifierCap    float64 `yaml:"amplifier_cap" json:"amplifier_cap" default:"1.10" validate:"gte=1"`
	MaxScore        float64 `yaml:"max_score" json:"max_score" default:"0.08" validate:"gt=0,lte=1"`
}

// IVTerm S2: 변동성 기간구조 스코어러 (비방향성)
type IVTerm struct {
	InversionRatio float64 `yaml:"inversion_ratio" json:"inversion_ratio" default:"1.15" validate:"gte=1"`
	ExtremeSpread  float64 `yaml:"extreme_spread" json:"extreme_spread" default:"1.0" validate:"gtfield=Spread"`
	ExtremeScore   float64 `yaml:"extreme_score" json:"extreme_score" default:"0.08" validate:"gte=0"`
	Spread         float64 `yaml:"spread" json:"spread" default:"0.3" validate:"gte=0"`
	SpreadScore    float64 `yaml:"spread_score" json:"spread_score" default:"0.06" validate:"gte=0"`
	InvertedScore  float64 `yaml:"inverted_score" json:"inverted_score" default:"0.03" validate:"gte=0"`
	LargeMovePct   float64 `yaml:"large_move_pct" json:"large_move_pct" default:"10" validate:"gtfield=MovePct"`
	LargeMoveScore float64 `yaml:"large_move_score" json:"large_move_score" default:"0.04" validate:"gte=0"`
	MovePct        float64 `yaml:"move_pct" json:"move_pct" default:"5" validate:"gte=0"`
	MoveScore      float64 `yaml:"move_score" json:"move_score" default:"0.02" validate:"gte=0"`
	MaxScore       float64 `yaml:"max_score" json:"max_score" default:"0.10" validate:"gt=0,lte=1"`
}

// Skew S2: 스큐 스코어러 (반전만 점수화)
type Skew struct {
	ReversalScore float64 `yaml:"reversal_score" json:"reversal_score" default:"0.05" validate:"gte=0"`
	HedgeZScore   float64 `yaml:"hedge_zscore" json:"hedge_zscore" default:"-3.0" validate:"lt=0"`
	HedgeScore    float64 `yaml:"hedge_score" json:"hedge_score" default:"0.04" validate:"gte=0"`
	MaxScore      float64 `yaml:"max_score" json:"max_score" default:"0.05" validate:"gt=0,lte=1"`
}

// DarkPool S2: 다크풀 스코어러
type DarkPool struct {
	MinPrints        int     `yaml:"min_prints" json:"min_prints" default:"2" validate:"gte=1"`
	LargeValue       float64 `yaml:"large_value" json:"large_value" default:"10000000" validate:"gtfield=Value"`
	BlockValue       float64 `yaml:"block_value" json:"block_value" default:"500000" validate:"gt=0"`
	MinBlocks        int     `yaml:"min_blocks" json:"min_blocks" default:"3" validate:"gte=1"`
	LargeScore       float64 `yaml:"large_score" json:"large_score" default:"0.04" validate:"gte=0"`
	Value            float64 `yaml:"value" json:"value" default:"2000000" validate:"gte=0"`
	ValueScore       float64 `yaml:"value_score" json:"value_score" default:"0.02" validate:"gte=0"`
	MinDirectional   int     `yaml:"min_directional" json:"min_directional" default:"5" validate:"gte=1"`
	DirectionalRatio float64 `yaml:"directional_ratio" json:"directional_ratio" default:"2.0" validate:"gte=1"`
	MaxScore         float64 `yaml:"max_score" json:"max_score" default:"0.04" validate:"gt=0,lte=1"`
}

// Institutional S2: 기관 레이더 스코어러
type Institutional struct {
	FourPlusScore         float64 `yaml:"four_plus_score" json:"four_plus_score" default:"0.08" validate:"gte=0"`
	ThreeScore            float64 `yaml:"three_score" json:"three_score" default:"0.06" validate:"gte=0"`
	TwoScore              float64 `yaml:"two_score" json:"two_score" default:"0.04" validate:"gte=0"`
	OneScore              float64 `yaml:"one_score" json:"one_score" default:"0.02" validate:"gte=0"`
	LargeMove             float64 `yaml:"large_move" json:"large_move" default:"15" validate:"gtfield=Move"`
	LargeMoveScore        float64 `yaml:"large_move_score" json:"large_move_score" default:"0.03" validate:"gte=0"`
	Move                  float64 `yaml:"move" json:"move" default:"8" validate:"gte=0"`
	MoveScore             float64 `yaml:"move_score" json:"move_score" default:"0.02" validate:"gte=0"`
	IVOIScore             float64 `yaml:"iv_oi_score" json:"iv_oi_score" default:"0.02" validate:"gte=0"`
	DarkPoolScore         float64 `yaml:"dark_pool_score" json:"dark_pool_score" default:"0.01" validate:"gte=0"`
	HighConvictionScore   float64 `yaml:"high_conviction_score" json:"high_conviction_score" default:"0.02" validate:"gte=0"`
	MediumConvictionScore float64 `yaml:"medium_conviction_score" json:"medium_conviction_score" default:"0.01" validate:"gte=0"`
	MaxScore              float64 `yaml:"max_score" json:"max_score" default:"0.12" validate:"gt=0,lte=1"`
}

// Insider S2: 내부자 거래 스코어러
type Insider struct {
	LargeNet         float64 `yaml:"large_net" json:"large_net" default:"1000000" validate:"gtfield=Net"`
	LargeScore       float64 `yaml:"large_score" json:"large_score" default:"0.06" validate:"gte=0"`
	Net              float64 `yaml:"net" json:"net" default:"100000" validate:"gte=0"`
	NetScore         float64 `yaml:"net_score" json:"net_score" default:"0.04" validate:"gte=0"`
	ClusterMinTrades int     `yaml:"cluster_min_trades" json:"cluster_min_trades" default:"3" validate:"gte=1"`
	ClusterScore     float64 `yaml:"cluster_score" json:"cluster_score" default:"0.02" validate:"gte=0"`
	LeanMinScore     float64 `yaml:"lean_min_score" json:"lean_min_score" default:"0.01" validate:"gte=0"`
	MaxScore         float64 `yaml:"max_score" json:"max_score" default:"0.06" validate:"gt=0,lte=1"`
}

// Recommendation S2: 외부 추천 스코어러 (비방향성)
type Recommendation struct {
	TripleEngines int     `yaml:"triple_engines" json:"triple_engines" default:"3" validate:"gtfield=DualEngines"`
	TripleScore   float64 `yaml:"triple_score" json:"triple_score" default:"0.04" validate:"gte=0"`
	DualEngines   int     `yaml:"dual_engines" json:"dual_engines" default:"2" validate:"gte=1"`
	DualScore     float64 `yaml:"dual_score" json:"dual_score" default:"0.02" validate:"gte=0"`
	CatalystMin   float64 `yaml:"catalyst_min" json:"catalyst_min" default:"0.80" validate:"gte=0,lte=1"`
	CatalystScore float64 `yaml:"catalyst_score" json:"catalyst_score" default:"0.02" validate:"gte=0"`
	MaxScore      float64 `yaml:"max_score" json:"max_score" default:"0.06" validate:"gt=0,lte=1"`
}

// Legislative S2: 의회 거래 공시 스코어러
type Legislative struct {
	BuyScore       float64 `yaml:"buy_score" json:"buy_score" default:"0.04" validate:"gte=0"`
	SellScore      float64 `yaml:"sell_score" json:"sell_score" default:"0.03" validate:"gte=0"`
	PoliticianChar int     `yaml:"politician_chars" json:"politician_chars" default:"15" validate:"gte=1"`
	MaxScore       float64 `yaml:"max_score" json:"max_score" default:"0.04" validate:"gt=0,lte=1"`
}

// Resolver S3: 5단계 방향 결정
type Resolver struct {
	Tier1MinPremium   float64 `yaml:"tier1_min_premium" json:"tier1_min_premium" default:"200000" validate:"gte=0"`
	Tier1MinRatio     float64 `yaml:"tier1_min_ratio" json:"tier1_min_ratio" default:"0.15" validate:"gte=0,lte=1"`
	Tier1BullishShare float64 `yaml:"tier1_bullish_share" json:"tier1_bullish_share" default:"0.60" validate:"gt=0.5,lte=1"`

	Tier2aBonus float64 `yaml:"tier2a_bonus" json:"tier2a_bonus" default:"0.04" validate:"gte=0"`

	Tier3MinPremium        float64 `yaml:"tier3_min_premium" json:"tier3_min_premium" default:"300000" validate:"gte=0"`
	Tier3CorroboratedShare float64 `yaml:"tier3_corroborated_share" json:"tier3_corroborated_share" default:"0.65" validate:"gt=0.5,lte=1"`
	Tier3DominantShare     float64 `yaml:"tier3_dominant_share" json:"tier3_dominant_share" default:"0.80" validate:"gtefield=Tier3CorroboratedShare,lte=1"`

	Tier4MinSources      int `yaml:"tier4_min_sources" json:"tier4_min_sources" default:"3" validate:"gte=1"`
	Tier4CatalystSources int `yaml:"tier4_catalyst_sources" json:"tier4_catalyst_sources" default:"2" validate:"gte=1,ltefield=Tier4MinSources"`

	Tier5NonFlowWithOI float64 `yaml:"tier5_non_flow_with_oi" json:"tier5_non_flow_with_oi" default:"0.10" validate:"gte=0"`
	Tier5NonFlowWithIV float64 `yaml:"tier5_non_flow_with_iv" json:"tier5_non_flow_with_iv" default:"0.08" validate:"gte=0"`
	Tier5MinLeans      int     `yaml:"tier5_min_leans" json:"tier5_min_leans" default:"2" validate:"gte=1"`

	// Tier 5b: 지속적 OI 누적 규칙 (명시적 티어)
	EnableSustainedOITier *bool `yaml:"enable_sustained_oi_tier" json:"enable_sustained_oi_tier" default:"true"`
	SustainedOIDays       int   `yaml:"sustained_oi_days" json:"sustained_oi_days" default:"7" validate:"gte=1"`
	SustainedOIContracts  int   `yaml:"sustained_oi_contracts" json:"sustained_oi_contracts" default:"10" validate:"gte=1"`
}

// Tier1BearishShare mirrors Tier1BullishShare around 0.5
func (r Resolver) Tier1BearishShare() float64 { return 1 - r.Tier1BullishShare }

// SustainedOITierEnabled reports whether tier 5b is active
func (r Resolver) SustainedOITierEnabled() bool {
	return r.EnableSustainedOITier == nil || *r.EnableSustainedOITier
}

// Aggregator S4: 확신도 집계
type Aggregator struct {
	StrongConvergenceSources   int     `yaml:"strong_convergence_sources" json:"strong_convergence_sources" default:"4" validate:"gtfield=ConvergenceSources"`
	StrongConvergenceMult      float64 `yaml:"strong_convergence_mult" json:"strong_convergence_mult" default:"1.40" validate:"gte=1"`
	ConvergenceSources         int     `yaml:"convergence_sources" json:"convergence_sources" default:"3" validate:"gtfield=CatalystConvergenceSources"`
	ConvergenceMult            float64 `yaml:"convergence_mult" json:"convergence_mult" default:"1.25" validate:"gte=1"`
	CatalystConvergenceSources int     `yaml:"catalyst_convergence_sources" json:"catalyst_convergence_sources" default:"2" validate:"gte=1"`
	CatalystConvergenceMult    float64 `yaml:"catalyst_convergence_mult" json:"catalyst_convergence_mult" default:"1.15" validate:"gte=1"`

	VolCatalystStrongBonus float64 `yaml:"vol_catalyst_strong_bonus" json:"vol_catalyst_strong_bonus" default:"0.10" validate:"gte=0"`
	VolCatalystBonus       float64 `yaml:"vol_catalyst_bonus" json:"vol_catalyst_bonus" default:"0.06" validate:"gte=0"`
	VolCatalystFlowMin     float64 `yaml:"vol_catalyst_flow_min" json:"vol_catalyst_flow_min" default:"0.10" validate:"gte=0"`

	Tier3Scale float64 `yaml:"tier3_scale" json:"tier3_scale" default:"0.85" validate:"gt=0,lte=1"`
	Tier4Scale float64 `yaml:"tier4_scale" json:"tier4_scale" default:"0.70" validate:"gt=0,lte=1"`
	Tier5Scale float64 `yaml:"tier5_scale" json:"tier5_scale" default:"0.65" validate:"gt=0,lte=1"`

	ConflictOverrideFactor   float64 `yaml:"conflict_override_factor" json:"conflict_override_factor" default:"0.85" validate:"gt=0,lte=1"`
	ConflictUnresolvedFactor float64 `yaml:"conflict_unresolved_factor" json:"conflict_unresolved_factor" default:"0.75" validate:"gt=0,lte=1"`
	CautionFactor            float64 `yaml:"caution_factor" json:"caution_factor" default:"0.80" validate:"gt=0,lte=1"`
	CautionMargin            int     `yaml:"caution_margin" json:"caution_margin" default:"1" validate:"gte=0"`

	HedgeLongShare     float64 `yaml:"hedge_long_share" json:"hedge_long_share" default:"0.80" validate:"gt=0,lte=1"`
	HedgeMaxShortRatio float64 `yaml:"hedge_max_short_ratio" json:"hedge_max_short_ratio" default:"0.10" validate:"gte=0,lte=1"`
	HedgeFactor        float64 `yaml:"hedge_factor" json:"hedge_factor" default:"0.60" validate:"gt=0,lte=1"`

	HighBetaFactor float64 `yaml:"high_beta_factor" json:"high_beta_factor" default:"1.15" validate:"gte=1"`
}

// Stability S5: 방향 전환 가드
type Stability struct {
	FlipOverrideRatio float64 `yaml:"flip_override_ratio" json:"flip_override_ratio" default:"1.30" validate:"gte=1"`
	FlipPenalty       float64 `yaml:"flip_penalty" json:"flip_penalty" default:"0.70" validate:"gt=0,lte=1"`
	SnapshotTopN      int     `yaml:"snapshot_top_n" json:"snapshot_top_n" default:"20" validate:"gte=1"`
	AuditTopN         int     `yaml:"audit_top_n" json:"audit_top_n" default:"5" validate:"gte=1"`
}

// Export S6: 후보 출력
type Export struct {
	MinConviction  float64 `yaml:"min_conviction" json:"min_conviction" default:"0.22" validate:"gte=0,lt=1"`
	CandidateTopN  int     `yaml:"candidate_top_n" json:"candidate_top_n" default:"15" validate:"gte=1"`
	CandidateScale float64 `yaml:"candidate_scale" json:"candidate_scale" default:"1.5" validate:"gt=0"`
}

// defaultHighBeta is the calibrated high-volatility list
var defaultHighBeta = []string{
	"MSTR", "CLSK", "MARA", "RIOT", "BITF", "WULF", "HUT", "CIFR", // crypto
	"QBTS", "RGTI", "IONQ", "OKLO", // quantum/nuclear
	"LUNR", "RKLB", "ASTS", "SPCE", // space
	"GME", "AMC", "DJT", "BYND", // meme
	"IBRX", "SAVA", "NTLA", "CRSP", "DNA", "IOVA", "NVAX", "CRWV", // biotech
	"SMCI", "APP", "UPST", "AFRM", "HIMS", "CVNA", "LCID", "PLUG",
	"RDDT", "SNAP", "U", "FUBO", "PTON", "TDOC",
	"ENPH", "SEDG", "FSLR", // solar
	"ARM", "INOD", "HROW", "MDGL", "VKTX",
}

// SetDefaults implements defaults.Setter for fields struct tags cannot express
func (c *Config) SetDefaults() {
	if len(c.HighBeta) == 0 {
		c.HighBeta = append([]string(nil), defaultHighBeta...)
	}
}

// HighBetaSet returns HighBeta as a lookup set
func (c *Config) HighBetaSet() map[string]bool {
	out := make(map[string]bool, len(c.HighBeta))
	for _, s := range c.HighBeta {
		out[s] = true
	}
	return out
}
