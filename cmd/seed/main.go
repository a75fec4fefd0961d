package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"mailarchive/backend/internal/auth"
	"mailarchive/backend/internal/config"
	"mailarchive/backend/internal/domain"
	"mailarchive/backend/internal/storage"
	"mailarchive/backend/internal/storage/postgres"
)

// 随机内容词库
var (
	firstNames = []string{
		"John", "Mary", "James", "Patricia", "Robert", "Jennifer", "Michael",
		"Linda", "William", "Elizabeth", "David", "Barbara", "Richard", "Susan",
		"Joseph", "Jessica", "Thomas", "Sarah", "Charles", "Karen",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
		"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
		"Wilson", "Anderson", "Taylor", "Moore", "Jackson", "Martin", "Lee",
	}
	sentenceWords = []string{
		"project", "meeting", "update", "schedule", "report", "budget", "team",
		"review", "deadline", "proposal", "client", "contract", "invoice",
		"quarterly", "numbers", "discussion", "agenda", "feedback", "summary",
		"planning", "delivery", "status", "approval", "request", "follow",
		"details", "attached", "confirm", "available", "office", "morning",
	}
	titleWords = []string{
		"Quarterly", "Update", "Meeting", "Reminder", "Important", "Schedule",
		"Project", "Review", "Notice", "Follow-up", "Request", "Report",
		"Invitation", "Summary", "Announcement",
	}
)

// main 向数据库填充演示数据：用户、邮件（含交叉引用）、评论。
func main() {
	numSenders := flag.Int("senders", 20, "发件人数量")
	perSenderPerYear := flag.Int("per-year", 75, "每个发件人每年的邮件数")
	numComments := flag.Int("comments", 150, "顶层评论数量")
	maxReplies := flag.Int("max-replies", 5, "每条顶层评论的最大回复数")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if cfg.Database.Type == "" || cfg.Database.DSN == "" {
		fmt.Println("No database configured. Set MAILARCHIVE_DATABASE_TYPE and MAILARCHIVE_DATABASE_DSN.")
		os.Exit(1)
	}

	var store *postgres.Store
	if cfg.Database.Type == "mysql" {
		store, err = postgres.NewMySQLStore(cfg.Database.DSN)
	} else {
		store, err = postgres.NewStore(cfg.Database.DSN)
	}
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fmt.Println("--- Seeding Database ---")

	users, err := seedUsers(store)
	if err != nil {
		fmt.Printf("Failed to seed users: %v\n", err)
		os.Exit(1)
	}

	emails, err := seedEmails(store, users, *numSenders, *perSenderPerYear)
	if err != nil {
		fmt.Printf("Failed to seed emails: %v\n", err)
		os.Exit(1)
	}

	if err := seedComments(store, users, emails, *numComments, *maxReplies); err != nil {
		fmt.Printf("Failed to seed comments: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Finished seeding.")
}

// seedUsers 创建初始用户（已存在则跳过）
func seedUsers(store storage.Store) ([]domain.User, error) {
	initial := []struct {
		username string
		password string
		role     domain.UserRole
	}{
		{"admin", "password", domain.RoleAdmin},
		{"testuser", "password", domain.RoleUser},
	}

	for _, u := range initial {
		if _, err := store.GetUserByUsername(u.username); err == nil {
			continue
		} else if err != storage.ErrUserNotFound {
			return nil, err
		}

		fmt.Printf("Creating user: %s\n", u.username)
		hash, err := auth.HashPassword(u.password)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		user := &domain.User{
			ID:           uuid.New().String(),
			Username:     u.username,
			PasswordHash: hash,
			Role:         u.role,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := store.CreateUser(user); err != nil {
			return nil, err
		}
	}

	return store.ListUsers()
}

// seedEmails 为每个用户生成来自固定发件人池的邮件，
// 并为约 30% 的邮件注入指向其他邮件的交叉引用。
func seedEmails(store storage.Store, users []domain.User, numSenders, perSenderPerYear int) ([]*domain.Email, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users found, seed users first")
	}

	// 生成发件人池
	senders := make([]string, 0, numSenders)
	seen := make(map[string]bool)
	for len(senders) < numSenders {
		name := firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
		if seen[name] {
			continue
		}
		seen[name] = true
		senders = append(senders, name)
	}

	fmt.Println("Generating email data...")

	// 每个 (发件人, 年份) 的序号从 1000 开始递增
	counters := make(map[string]int)
	currentYear := time.Now().Year()
	var emails []*domain.Email

	for _, user := range users {
		for _, sender := range senders {
			for year := currentYear - 2; year <= currentYear; year++ {
				for i := 0; i < perSenderPerYear; i++ {
					dateSent := randomTimeIn(year)
					key := fmt.Sprintf("%s|%d", sender, year)
					if _, ok := counters[key]; !ok {
						counters[key] = 1000
					} else {
						counters[key]++
					}

					slug := strings.ReplaceAll(sender, " ", "")
					id := fmt.Sprintf("%s-%s-%d", slug, dateSent.Format("06"), counters[key])

					emails = append(emails, &domain.Email{
						UniqueEmailID: id,
						UserID:        user.ID,
						SenderName:    sender,
						SenderEmail:   strings.ToLower(strings.ReplaceAll(sender, " ", ".")) + "@example.com",
						Title:         randomTitle(),
						Body:          randomParagraph(15),
						EmailType:     domain.EmailTypes[rand.Intn(len(domain.EmailTypes))],
						DateSent:      dateSent,
						CreatedAt:     time.Now(),
					})
				}
			}
		}
	}

	fmt.Printf("Generated %d emails.\n", len(emails))
	fmt.Println("Injecting email references...")

	allIDs := make([]string, len(emails))
	for i, e := range emails {
		allIDs[i] = e.UniqueEmailID
	}

	for _, email := range emails {
		if rand.Float64() >= 0.3 || len(allIDs) < 2 {
			continue
		}
		refs := sampleIDs(allIDs, 1+rand.Intn(3))
		// refs 列是冗余缓存，正文才是权威来源
		email.References = strings.Join(refs, ",")
		for _, ref := range refs {
			email.Body += fmt.Sprintf("\n\nReference to: %s", ref)
		}
	}

	for _, email := range emails {
		if err := store.SaveEmail(email); err != nil {
			return nil, err
		}
	}

	fmt.Println("Finished seeding emails and references.")
	return emails, nil
}

// seedComments 生成顶层评论与回复，时间总在被评论对象之后
func seedComments(store storage.Store, users []domain.User, emails []*domain.Email, numTopLevel, maxReplies int) error {
	if len(users) == 0 || len(emails) == 0 {
		return fmt.Errorf("users or emails not found, seed them first")
	}

	fmt.Println("--- Seeding Comments ---")

	topLevel := make([]*domain.Comment, 0, numTopLevel)
	for i := 0; i < numTopLevel; i++ {
		email := emails[rand.Intn(len(emails))]
		user := users[rand.Intn(len(users))]
		comment := &domain.Comment{
			Body:      randomParagraph(1 + rand.Intn(4)),
			Timestamp: randomTimeAfter(email.DateSent),
			UserID:    user.ID,
			EmailID:   email.UniqueEmailID,
		}
		if err := store.CreateComment(comment); err != nil {
			return err
		}
		topLevel = append(topLevel, comment)
	}
	fmt.Printf("Created %d top-level comments.\n", len(topLevel))

	replies := 0
	for _, parent := range topLevel {
		for i := 0; i < rand.Intn(maxReplies+1); i++ {
			user := users[rand.Intn(len(users))]
			parentID := parent.ID
			reply := &domain.Comment{
				Body:      randomParagraph(1 + rand.Intn(3)),
				Timestamp: randomTimeAfter(parent.Timestamp),
				UserID:    user.ID,
				EmailID:   parent.EmailID,
				ParentID:  &parentID,
			}
			if err := store.CreateComment(reply); err != nil {
				return err
			}
			replies++
		}
	}
	fmt.Printf("Created %d replies.\n", replies)
	fmt.Println("Finished seeding comments.")
	return nil
}

// randomTimeIn 返回指定年份内的随机时刻
func randomTimeIn(year int) time.Time {
	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, 12, 31, 23, 59, 59, 0, time.UTC)
	if now := time.Now().UTC(); end.After(now) {
		end = now
	}
	span := end.Sub(start)
	return start.Add(time.Duration(rand.Int63n(int64(span))))
}

// randomTimeAfter 返回 base 之后（最多 30 天内）的随机时刻，不晚于当前时间
func randomTimeAfter(base time.Time) time.Time {
	offset := time.Duration(rand.Int63n(int64(30 * 24 * time.Hour)))
	t := base.Add(offset)
	if now := time.Now(); t.After(now) {
		return now
	}
	return t
}

// sampleIDs 无放回地抽取 n 个标识
func sampleIDs(ids []string, n int) []string {
	if n > len(ids) {
		n = len(ids)
	}
	picked := make([]string, 0, n)
	used := make(map[int]bool, n)
	for len(picked) < n {
		i := rand.Intn(len(ids))
		if used[i] {
			continue
		}
		used[i] = true
		picked = append(picked, ids[i])
	}
	return picked
}

func randomTitle() string {
	n := 3 + rand.Intn(4)
	words := make([]string, n)
	for i := range words {
		words[i] = titleWords[rand.Intn(len(titleWords))]
	}
	return strings.Join(words, " ")
}

func randomSentence() string {
	n := 5 + rand.Intn(8)
	words := make([]string, n)
	for i := range words {
		words[i] = sentenceWords[rand.Intn(len(sentenceWords))]
	}
	s := strings.Join(words, " ")
	return strings.ToUpper(s[:1]) + s[1:] + "."
}

func randomParagraph(sentences int) string {
	parts := make([]string, sentences)
	for i := range parts {
		parts[i] = randomSentence()
	}
	return strings.Join(parts, " ")
}
