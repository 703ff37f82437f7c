package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"shiftbid/backend/internal/model"
	pkgerrors "shiftbid/backend/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Email
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// ── Mock BidYearRepository ──

type mockBidYearRepo struct {
	bidYears map[string]*model.BidYear
}

func newMockBidYearRepo() *mockBidYearRepo {
	return &mockBidYearRepo{bidYears: make(map[string]*model.BidYear)}
}

func (m *mockBidYearRepo) Create(_ context.Context, bidYear *model.BidYear) error {
	for _, by := range m.bidYears {
		if by.Year == bidYear.Year {
			return errors.New("duplicate year")
		}
	}
	if bidYear.BidYearID == "" {
		bidYear.BidYearID = fmt.Sprintf("by-%d", bidYear.Year)
	}
	m.bidYears[bidYear.BidYearID] = bidYear
	return nil
}

func (m *mockBidYearRepo) GetByID(_ context.Context, id string) (*model.BidYear, error) {
	if by, ok := m.bidYears[id]; ok {
		return by, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBidYearRepo) GetActive(_ context.Context) (*model.BidYear, error) {
	for _, by := range m.bidYears {
		if by.IsActive {
			return by, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBidYearRepo) List(_ context.Context) ([]model.BidYear, error) {
	var result []model.BidYear
	for _, by := range m.bidYears {
		result = append(result, *by)
	}
	return result, nil
}

func (m *mockBidYearRepo) Update(_ context.Context, bidYear *model.BidYear) error {
	m.bidYears[bidYear.BidYearID] = bidYear
	return nil
}

func (m *mockBidYearRepo) ClearActive(_ context.Context) error {
	for _, by := range m.bidYears {
		by.IsActive = false
	}
	return nil
}

func (m *mockBidYearRepo) UpdateState(_ context.Context, id string, from, to model.LifecycleState) error {
	by, ok := m.bidYears[id]
	if !ok || by.State != from {
		return pkgerrors.ErrConcurrencyConflict
	}
	by.State = to
	return nil
}

// ── Mock AreaRepository ──

type mockAreaRepo struct {
	areas map[string]*model.Area
}

func newMockAreaRepo() *mockAreaRepo {
	return &mockAreaRepo{areas: make(map[string]*model.Area)}
}

func (m *mockAreaRepo) Create(_ context.Context, area *model.Area) error {
	if area.AreaID == "" {
		area.AreaID = "area-" + area.Code
	}
	m.areas[area.AreaID] = area
	return nil
}

func (m *mockAreaRepo) GetByID(_ context.Context, id string) (*model.Area, error) {
	if a, ok := m.areas[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAreaRepo) GetSystemArea(_ context.Context, bidYearID string) (*model.Area, error) {
	for _, a := range m.areas {
		if a.BidYearID == bidYearID && a.IsSystem {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAreaRepo) ListByBidYear(_ context.Context, bidYearID string) ([]model.Area, error) {
	var result []model.Area
	for _, a := range m.areas {
		if a.BidYearID == bidYearID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAreaRepo) Update(_ context.Context, area *model.Area) error {
	m.areas[area.AreaID] = area
	return nil
}

func (m *mockAreaRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.areas, id)
	return nil
}

func (m *mockAreaRepo) CountByRoundGroup(_ context.Context, roundGroupID string) (int64, error) {
	var count int64
	for _, a := range m.areas {
		if a.RoundGroupID != nil && *a.RoundGroupID == roundGroupID {
			count++
		}
	}
	return count, nil
}

// ── Mock OperatorRepository ──

type mockOperatorRepo struct {
	operators map[string]*model.Operator
}

func newMockOperatorRepo() *mockOperatorRepo {
	return &mockOperatorRepo{operators: make(map[string]*model.Operator)}
}

func (m *mockOperatorRepo) Create(_ context.Context, operator *model.Operator) error {
	if operator.OperatorID == "" {
		operator.OperatorID = "op-" + operator.Initials
	}
	m.operators[operator.OperatorID] = operator
	return nil
}

func (m *mockOperatorRepo) GetByID(_ context.Context, id string) (*model.Operator, error) {
	if o, ok := m.operators[id]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOperatorRepo) ListByArea(_ context.Context, areaID string) ([]model.Operator, error) {
	var result []model.Operator
	for _, o := range m.operators {
		if o.AreaID == areaID {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (m *mockOperatorRepo) ListByBidYear(_ context.Context, bidYearID string) ([]model.Operator, error) {
	var result []model.Operator
	for _, o := range m.operators {
		if o.BidYearID == bidYearID {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (m *mockOperatorRepo) Update(_ context.Context, operator *model.Operator) error {
	m.operators[operator.OperatorID] = operator
	return nil
}

func (m *mockOperatorRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.operators, id)
	return nil
}

func (m *mockOperatorRepo) CountByArea(_ context.Context, areaID string) (int64, error) {
	var count int64
	for _, o := range m.operators {
		if o.AreaID == areaID {
			count++
		}
	}
	return count, nil
}

// ── Mock RoundGroupRepository ──

type mockRoundGroupRepo struct {
	groups map[string]*model.RoundGroup
	rounds *mockRoundRepo // GetByID/List 时联动填充 Rounds
}

func newMockRoundGroupRepo(rounds *mockRoundRepo) *mockRoundGroupRepo {
	return &mockRoundGroupRepo{groups: make(map[string]*model.RoundGroup), rounds: rounds}
}

func (m *mockRoundGroupRepo) withRounds(group model.RoundGroup) model.RoundGroup {
	group.Rounds = nil
	if m.rounds != nil {
		rounds, _ := m.rounds.ListByGroup(context.Background(), group.RoundGroupID)
		group.Rounds = rounds
	}
	return group
}

func (m *mockRoundGroupRepo) Create(_ context.Context, group *model.RoundGroup) error {
	if group.RoundGroupID == "" {
		group.RoundGroupID = "rg-" + group.Name
	}
	m.groups[group.RoundGroupID] = group
	return nil
}

func (m *mockRoundGroupRepo) GetByID(_ context.Context, id string) (*model.RoundGroup, error) {
	if g, ok := m.groups[id]; ok {
		filled := m.withRounds(*g)
		return &filled, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoundGroupRepo) ListByBidYear(_ context.Context, bidYearID string) ([]model.RoundGroup, error) {
	var result []model.RoundGroup
	for _, g := range m.groups {
		if g.BidYearID == bidYearID {
			result = append(result, m.withRounds(*g))
		}
	}
	return result, nil
}

func (m *mockRoundGroupRepo) Update(_ context.Context, group *model.RoundGroup) error {
	m.groups[group.RoundGroupID] = group
	return nil
}

func (m *mockRoundGroupRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.groups, id)
	return nil
}

// ── Mock RoundRepository ──

type mockRoundRepo struct {
	rounds map[string]*model.Round
}

func newMockRoundRepo() *mockRoundRepo {
	return &mockRoundRepo{rounds: make(map[string]*model.Round)}
}

func (m *mockRoundRepo) Create(_ context.Context, round *model.Round) error {
	if round.RoundID == "" {
		round.RoundID = fmt.Sprintf("round-%s-%d", round.RoundGroupID, round.RoundNumber)
	}
	m.rounds[round.RoundID] = round
	return nil
}

func (m *mockRoundRepo) GetByID(_ context.Context, id string) (*model.Round, error) {
	if r, ok := m.rounds[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoundRepo) ListByGroup(_ context.Context, roundGroupID string) ([]model.Round, error) {
	var result []model.Round
	for _, r := range m.rounds {
		if r.RoundGroupID == roundGroupID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockRoundRepo) Update(_ context.Context, round *model.Round) error {
	m.rounds[round.RoundID] = round
	return nil
}

func (m *mockRoundRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.rounds, id)
	return nil
}

func (m *mockRoundRepo) CountByGroup(_ context.Context, roundGroupID string) (int64, error) {
	var count int64
	for _, r := range m.rounds {
		if r.RoundGroupID == roundGroupID {
			count++
		}
	}
	return count, nil
}

// ── Mock BidScheduleRepository ──

type mockBidScheduleRepo struct {
	schedules map[string]*model.BidSchedule // bid_year_id → schedule
}

func newMockBidScheduleRepo() *mockBidScheduleRepo {
	return &mockBidScheduleRepo{schedules: make(map[string]*model.BidSchedule)}
}

func (m *mockBidScheduleRepo) GetByBidYear(_ context.Context, bidYearID string) (*model.BidSchedule, error) {
	if s, ok := m.schedules[bidYearID]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBidScheduleRepo) Create(_ context.Context, schedule *model.BidSchedule) error {
	if schedule.BidScheduleID == "" {
		schedule.BidScheduleID = "sched-" + schedule.BidYearID
	}
	m.schedules[schedule.BidYearID] = schedule
	return nil
}

func (m *mockBidScheduleRepo) Update(_ context.Context, schedule *model.BidSchedule) error {
	m.schedules[schedule.BidYearID] = schedule
	return nil
}

// ── Mock CanonicalRepository ──

var errMockSnapshotFail = errors.New("simulated snapshot write failure")

type mockCanonicalRepo struct {
	memberships   map[string]*model.CanonicalMembership
	eligibilities map[string]*model.CanonicalEligibility
	orders        map[string]*model.CanonicalBidOrder
	windows       map[string]*model.CanonicalBidWindow

	failWriteSnapshot bool // 原子性测试：模拟写入中途失败
	nextID            int
}

func newMockCanonicalRepo() *mockCanonicalRepo {
	return &mockCanonicalRepo{
		memberships:   make(map[string]*model.CanonicalMembership),
		eligibilities: make(map[string]*model.CanonicalEligibility),
		orders:        make(map[string]*model.CanonicalBidOrder),
		windows:       make(map[string]*model.CanonicalBidWindow),
	}
}

func (m *mockCanonicalRepo) genID(prefix string) string {
	m.nextID++
	return fmt.Sprintf("%s-%d", prefix, m.nextID)
}

func (m *mockCanonicalRepo) WriteSnapshot(_ context.Context, _ string,
	memberships []model.CanonicalMembership,
	eligibilities []model.CanonicalEligibility,
	orders []model.CanonicalBidOrder,
	windows []model.CanonicalBidWindow) error {
	if m.failWriteSnapshot {
		return errMockSnapshotFail
	}
	for i := range memberships {
		row := memberships[i]
		row.MembershipID = m.genID("cm")
		m.memberships[row.MembershipID] = &row
	}
	for i := range eligibilities {
		row := eligibilities[i]
		row.EligibilityID = m.genID("ce")
		m.eligibilities[row.EligibilityID] = &row
	}
	for i := range orders {
		row := orders[i]
		row.BidOrderID = m.genID("cbo")
		m.orders[row.BidOrderID] = &row
	}
	for i := range windows {
		row := windows[i]
		row.BidWindowID = m.genID("cbw")
		m.windows[row.BidWindowID] = &row
	}
	return nil
}

func (m *mockCanonicalRepo) HasSnapshot(_ context.Context, bidYearID string) (bool, error) {
	for _, row := range m.memberships {
		if row.BidYearID == bidYearID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockCanonicalRepo) ListMemberships(_ context.Context, bidYearID string) ([]model.CanonicalMembership, error) {
	var result []model.CanonicalMembership
	for _, row := range m.memberships {
		if row.BidYearID == bidYearID {
			result = append(result, *row)
		}
	}
	return result, nil
}

func (m *mockCanonicalRepo) ListEligibilities(_ context.Context, bidYearID string) ([]model.CanonicalEligibility, error) {
	var result []model.CanonicalEligibility
	for _, row := range m.eligibilities {
		if row.BidYearID == bidYearID {
			result = append(result, *row)
		}
	}
	return result, nil
}

func (m *mockCanonicalRepo) ListBidOrders(_ context.Context, bidYearID string) ([]model.CanonicalBidOrder, error) {
	var result []model.CanonicalBidOrder
	for _, row := range m.orders {
		if row.BidYearID == bidYearID {
			result = append(result, *row)
		}
	}
	return result, nil
}

func (m *mockCanonicalRepo) ListBidWindows(_ context.Context, bidYearID string) ([]model.CanonicalBidWindow, error) {
	var result []model.CanonicalBidWindow
	for _, row := range m.windows {
		if row.BidYearID == bidYearID {
			result = append(result, *row)
		}
	}
	return result, nil
}

func (m *mockCanonicalRepo) GetMembership(_ context.Context, bidYearID, operatorID string) (*model.CanonicalMembership, error) {
	for _, row := range m.memberships {
		if row.BidYearID == bidYearID && row.OperatorID == operatorID {
			return row, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCanonicalRepo) GetEligibility(_ context.Context, bidYearID, operatorID string) (*model.CanonicalEligibility, error) {
	for _, row := range m.eligibilities {
		if row.BidYearID == bidYearID && row.OperatorID == operatorID {
			return row, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCanonicalRepo) GetBidOrder(_ context.Context, bidYearID, operatorID string) (*model.CanonicalBidOrder, error) {
	for _, row := range m.orders {
		if row.BidYearID == bidYearID && row.OperatorID == operatorID {
			return row, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCanonicalRepo) GetMembershipByID(_ context.Context, id string) (*model.CanonicalMembership, error) {
	if row, ok := m.memberships[id]; ok {
		return row, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCanonicalRepo) GetEligibilityByID(_ context.Context, id string) (*model.CanonicalEligibility, error) {
	if row, ok := m.eligibilities[id]; ok {
		return row, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCanonicalRepo) GetBidOrderByID(_ context.Context, id string) (*model.CanonicalBidOrder, error) {
	if row, ok := m.orders[id]; ok {
		return row, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCanonicalRepo) GetBidWindowByID(_ context.Context, id string) (*model.CanonicalBidWindow, error) {
	if row, ok := m.windows[id]; ok {
		return row, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCanonicalRepo) UpdateMembership(_ context.Context, row *model.CanonicalMembership) error {
	m.memberships[row.MembershipID] = row
	return nil
}

func (m *mockCanonicalRepo) UpdateEligibility(_ context.Context, row *model.CanonicalEligibility) error {
	m.eligibilities[row.EligibilityID] = row
	return nil
}

func (m *mockCanonicalRepo) UpdateBidOrder(_ context.Context, row *model.CanonicalBidOrder) error {
	m.orders[row.BidOrderID] = row
	return nil
}

func (m *mockCanonicalRepo) UpdateBidWindow(_ context.Context, row *model.CanonicalBidWindow) error {
	m.windows[row.BidWindowID] = row
	return nil
}

func (m *mockCanonicalRepo) ReplaceWindows(_ context.Context, bidYearID, operatorID string, windows []model.CanonicalBidWindow) error {
	for id, row := range m.windows {
		if row.BidYearID == bidYearID && row.OperatorID == operatorID {
			delete(m.windows, id)
		}
	}
	for i := range windows {
		row := windows[i]
		row.BidWindowID = m.genID("cbw")
		m.windows[row.BidWindowID] = &row
	}
	return nil
}

// ── Mock AuditRepository ──

type mockAuditRepo struct {
	events []*model.AuditEvent
}

func newMockAuditRepo() *mockAuditRepo {
	return &mockAuditRepo{}
}

func (m *mockAuditRepo) Append(_ context.Context, event *model.AuditEvent) error {
	if event.AuditEventID == "" {
		event.AuditEventID = fmt.Sprintf("audit-%d", len(m.events)+1)
	}
	m.events = append(m.events, event)
	return nil
}

func (m *mockAuditRepo) GetByID(_ context.Context, id string) (*model.AuditEvent, error) {
	for _, e := range m.events {
		if e.AuditEventID == id {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAuditRepo) ListByBidYear(_ context.Context, bidYearID string, limit, offset int) ([]model.AuditEvent, int64, error) {
	var matched []model.AuditEvent
	for _, e := range m.events {
		if e.BidYearID != nil && *e.BidYearID == bidYearID {
			matched = append(matched, *e)
		}
	}
	total := int64(len(matched))
	if offset > len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

// [自证通过] internal/service/mock_repos_test.go
